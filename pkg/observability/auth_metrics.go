package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Login outcomes recorded by AuthMetrics.Login
const (
	LoginSuccess      = "success"
	LoginInvalid      = "invalid_credentials"
	LoginUnconfirmed  = "unconfirmed"
	LoginInternalFail = "error"
)

// AuthMetrics counts account and mail events. A nil *AuthMetrics records nothing.
type AuthMetrics struct {
	signups      metric.Int64Counter
	logins       metric.Int64Counter
	refreshes    metric.Int64Counter
	emailsSent   metric.Int64Counter
	emailsFailed metric.Int64Counter
}

// NewAuthMetrics registers the counters on meter
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	m := &AuthMetrics{}
	var err error

	if m.signups, err = meter.Int64Counter("contact_book_signups_total",
		metric.WithDescription("Accounts created")); err != nil {
		return nil, fmt.Errorf("failed to create signups counter: %w", err)
	}
	if m.logins, err = meter.Int64Counter("contact_book_logins_total",
		metric.WithDescription("Login attempts by outcome")); err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}
	if m.refreshes, err = meter.Int64Counter("contact_book_token_refreshes_total",
		metric.WithDescription("Token pairs issued by refresh")); err != nil {
		return nil, fmt.Errorf("failed to create refreshes counter: %w", err)
	}
	if m.emailsSent, err = meter.Int64Counter("contact_book_emails_sent_total",
		metric.WithDescription("Confirmation emails delivered to the SMTP server")); err != nil {
		return nil, fmt.Errorf("failed to create emails sent counter: %w", err)
	}
	if m.emailsFailed, err = meter.Int64Counter("contact_book_emails_failed_total",
		metric.WithDescription("Confirmation emails that failed or were dropped")); err != nil {
		return nil, fmt.Errorf("failed to create emails failed counter: %w", err)
	}

	return m, nil
}

func (m *AuthMetrics) Signup(ctx context.Context) {
	if m == nil {
		return
	}
	m.signups.Add(ctx, 1)
}

func (m *AuthMetrics) Login(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AuthMetrics) Refresh(ctx context.Context) {
	if m == nil {
		return
	}
	m.refreshes.Add(ctx, 1)
}

func (m *AuthMetrics) EmailSent(ctx context.Context) {
	if m == nil {
		return
	}
	m.emailsSent.Add(ctx, 1)
}

func (m *AuthMetrics) EmailFailed(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.emailsFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
