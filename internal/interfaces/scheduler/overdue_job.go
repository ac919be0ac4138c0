package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"financeiro/internal/domain/expense"
	"financeiro/internal/domain/notification"
	"financeiro/internal/shared/format"
)

// OverdueReminderJob pushes a reminder to one user about their overdue
// parcelas.
type OverdueReminderJob struct {
	userID        int64
	overdue       []*expense.OverdueInstallment
	notifications *notification.Service
}

func NewOverdueReminderJob(userID int64, overdue []*expense.OverdueInstallment, notifications *notification.Service) *OverdueReminderJob {
	return &OverdueReminderJob{userID: userID, overdue: overdue, notifications: notifications}
}

func (j *OverdueReminderJob) Execute(ctx context.Context) error {
	if len(j.overdue) == 0 {
		return nil
	}

	var body string
	if len(j.overdue) == 1 {
		o := j.overdue[0]
		body = fmt.Sprintf("Parcela %d de %s (%s) venceu em %s.",
			o.Number, o.Category, format.BRL(o.Value), o.DueDate.Format("02/01/2006"))
	} else {
		body = fmt.Sprintf("Você tem %d parcelas vencidas.", len(j.overdue))
	}

	return j.notifications.NotifyUser(ctx, j.userID, "Parcelas vencidas", body, map[string]string{
		"route": "parcelas",
	})
}

func (j *OverdueReminderJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

func (j *OverdueReminderJob) Description() string {
	return fmt.Sprintf("Overdue reminder for user %d (%d parcelas)", j.userID, len(j.overdue))
}

// OverdueScanner drives the daily sweep: it lists every pending parcela
// past its due date and submits one reminder job per affected user.
type OverdueScanner struct {
	expenses      *expense.Service
	notifications *notification.Service
	pool          *WorkerPool
	interval      time.Duration
}

func NewOverdueScanner(expenses *expense.Service, notifications *notification.Service, pool *WorkerPool, interval time.Duration) *OverdueScanner {
	return &OverdueScanner{
		expenses:      expenses,
		notifications: notifications,
		pool:          pool,
		interval:      interval,
	}
}

// Run blocks until ctx is cancelled, scanning once immediately and then on
// every interval tick.
func (s *OverdueScanner) Run(ctx context.Context) {
	s.scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *OverdueScanner) scan(ctx context.Context) {
	overdue, err := s.expenses.ListOverdue(ctx, 0)
	if err != nil {
		log.Printf("Overdue scan failed: %v", err)
		return
	}

	byUser := make(map[int64][]*expense.OverdueInstallment)
	for _, o := range overdue {
		byUser[o.UserID] = append(byUser[o.UserID], o)
	}

	for userID, installments := range byUser {
		job := NewOverdueReminderJob(userID, installments, s.notifications)
		if err := s.pool.Submit(job); err != nil {
			log.Printf("Failed to submit overdue reminder for user %d: %v", userID, err)
		}
	}
}
