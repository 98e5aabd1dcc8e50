package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prperemyshlev/contact-book/internal/utils"
	"github.com/prperemyshlev/contact-book/pkg/mailer"
	"github.com/prperemyshlev/contact-book/pkg/observability"
	"go.uber.org/zap"
)

const (
	confirmationSubject = "Confirm your email"
	confirmationPath    = "/api/auth/confirmed_email/"
	sendTimeout         = 30 * time.Second
)

// MailSender delivers a rendered message
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// ConfirmationTask asks for a confirmation email to be sent to Email
type ConfirmationTask struct {
	Email    string
	Username string
	BaseURL  string
}

// MailQueue sends confirmation emails from a fixed pool of workers.
// Enqueue never blocks; tasks that don't fit in the buffer are dropped.
type MailQueue struct {
	tasks      chan ConfirmationTask
	sender     MailSender
	jwtManager *utils.JWTManager
	metrics    *observability.AuthMetrics
	logger     *zap.Logger
	workers    int

	mu      sync.RWMutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewMailQueue creates a queue holding up to size pending tasks
func NewMailQueue(
	sender MailSender,
	jwtManager *utils.JWTManager,
	metrics *observability.AuthMetrics,
	logger *zap.Logger,
	workers, size int,
) *MailQueue {
	if workers < 1 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}

	return &MailQueue{
		tasks:      make(chan ConfirmationTask, size),
		sender:     sender,
		jwtManager: jwtManager,
		metrics:    metrics,
		logger:     logger,
		workers:    workers,
	}
}

// Start launches the workers. Calling it more than once has no effect.
func (q *MailQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started || q.closed {
		return
	}
	q.started = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
}

// Enqueue hands a task to the workers and reports whether it was accepted
func (q *MailQueue) Enqueue(task ConfirmationTask) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.logger.Warn("mail queue closed, dropping confirmation email", zap.String("email", task.Email))
		q.metrics.EmailFailed(context.Background(), "queue_closed")
		return false
	}

	select {
	case q.tasks <- task:
		return true
	default:
		q.logger.Warn("mail queue full, dropping confirmation email", zap.String("email", task.Email))
		q.metrics.EmailFailed(context.Background(), "queue_full")
		return false
	}
}

// Stop stops accepting tasks and waits for the workers to drain the buffer
// or for ctx to be done, whichever comes first.
func (q *MailQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail queue did not drain: %w", ctx.Err())
	}
}

func (q *MailQueue) work() {
	defer q.wg.Done()

	for task := range q.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := q.deliver(ctx, task); err != nil {
			q.logger.Error("failed to send confirmation email",
				zap.String("email", task.Email),
				zap.Error(err),
			)
			q.metrics.EmailFailed(ctx, "send")
		} else {
			q.logger.Info("confirmation email sent", zap.String("email", task.Email))
			q.metrics.EmailSent(ctx)
		}
		cancel()
	}
}

func (q *MailQueue) deliver(ctx context.Context, task ConfirmationTask) error {
	token, err := q.jwtManager.GenerateEmailToken(task.Email)
	if err != nil {
		return err
	}

	body, err := mailer.RenderVerifyEmail(mailer.VerifyEmailData{
		Username: task.Username,
		Link:     ConfirmationLink(task.BaseURL, token),
	})
	if err != nil {
		return err
	}

	return q.sender.Send(ctx, mailer.Message{
		To:      task.Email,
		Subject: confirmationSubject,
		HTML:    body,
	})
}

// ConfirmationLink builds the URL a user follows to confirm their email
func ConfirmationLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + confirmationPath + token
}
