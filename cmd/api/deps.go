package main

import (
	"context"
	"log"

	"financeiro/internal/domain/expense"
	"financeiro/internal/domain/income"
	"financeiro/internal/domain/notification"
	"financeiro/internal/domain/report"
	"financeiro/internal/domain/user"
	"financeiro/internal/infrastructure/firebase"
	"financeiro/internal/infrastructure/postgres"
	"financeiro/internal/infrastructure/smtp"
	httphandlers "financeiro/internal/interfaces/http"
	"financeiro/internal/shared/auth"
	"financeiro/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	FinanceHandler      *httphandlers.FinanceHandler
	ReportHandler       *httphandlers.ReportHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Services (for the scheduler)
	ExpenseService      *expense.Service
	NotificationService *notification.Service
}

// tokenIssuer adapts the shared JWT component to the user domain's
// TokenIssuer interface.
type tokenIssuer struct {
	jwt *auth.JWT
}

func (t tokenIssuer) GenerateSession(userID int64, email string) (string, error) {
	return t.jwt.Generate(userID, email)
}

func (t tokenIssuer) GenerateConfirmation(email string) (string, error) {
	return t.jwt.GenerateEmailToken(email)
}

func (t tokenIssuer) ValidateConfirmation(token string) error {
	_, err := t.jwt.ValidateEmailToken(token)
	return err
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database and apply migrations
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	incomeRepo := postgres.NewIncomeRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	deviceRepo := postgres.NewDeviceRepository(db)

	// Initialize auth components and the mailer
	jwt := auth.NewJWT(cfg.JWT.Secret)
	mailer := smtp.NewMailer(cfg.SMTP)

	// Initialize the FCM messenger if configured
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, deviceRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Firebase unavailable, push notifications disabled: %v", err)
		} else {
			messenger = fcm
		}
	}

	// Initialize domain services
	userService := user.NewService(userRepo, mailer, tokenIssuer{jwt: jwt})
	incomeService := income.NewService(incomeRepo, categoryRepo)
	expenseService := expense.NewService(expenseRepo, categoryRepo)
	reportService := report.NewService(incomeRepo, expenseRepo)
	notificationService := notification.NewService(deviceRepo, messenger)

	return &Dependencies{
		DB:                  db,
		AuthHandler:         httphandlers.NewAuthHandler(userService),
		FinanceHandler:      httphandlers.NewFinanceHandler(incomeService, expenseService, notificationService),
		ReportHandler:       httphandlers.NewReportHandler(reportService),
		NotificationHandler: httphandlers.NewNotificationHandler(notificationService),
		JWT:                 jwt,
		ExpenseService:      expenseService,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
