package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"financeiro/internal/infrastructure/postgres"
	"financeiro/internal/shared/config"
	"financeiro/internal/shared/format"
)

const usage = `Financeiro Admin CLI - Management commands for the Financeiro API

Usage:
  admin <command> [options]

Commands:
  overdue-check   List pending parcelas past their due date

Examples:
  # List overdue parcelas for a specific user
  admin overdue-check --user-id=1

  # List overdue parcelas for all users
  admin overdue-check --all

  # Treat a different date as today
  admin overdue-check --all --as-of=2024-06-01
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "overdue-check":
		runOverdueCheck(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}
}

func runOverdueCheck(args []string) {
	fs := flag.NewFlagSet("overdue-check", flag.ExitOnError)
	userID := fs.Int64("user-id", 0, "user to check")
	all := fs.Bool("all", false, "check every user")
	asOfStr := fs.String("as-of", "", "reference date (YYYY-MM-DD, default today)")
	fs.Parse(args)

	if *userID == 0 && !*all {
		log.Fatal("overdue-check requires --user-id or --all")
	}

	asOf := time.Now()
	if *asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", *asOfStr)
		if err != nil {
			log.Fatalf("Invalid --as-of date: %v", err)
		}
		asOf = parsed
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := postgres.NewExpenseRepository(db)
	overdue, err := repo.ListOverdue(ctx, *userID, asOf)
	if err != nil {
		log.Fatalf("Overdue check failed: %v", err)
	}

	if len(overdue) == 0 {
		fmt.Println("No overdue parcelas found")
		return
	}

	fmt.Printf("%-8s %-10s %-8s %-12s %-12s %s\n", "USER", "PARCELA", "NUM", "VALUE", "DUE", "CATEGORY")
	for _, o := range overdue {
		fmt.Printf("%-8d %-10d %-8d %-12s %-12s %s\n",
			o.UserID, o.ID, o.Number, format.BRL(o.Value), o.DueDate.Format("2006-01-02"), o.Category)
	}
	fmt.Printf("\n%d overdue parcelas\n", len(overdue))
}
