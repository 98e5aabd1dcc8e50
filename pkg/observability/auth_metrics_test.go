package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMetrics_ExportedThroughPrometheus(t *testing.T) {
	provider, handler, err := InitTelemetry("contact-book-test")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := NewAuthMetrics(provider.Meter("contact-book-test"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.Signup(ctx)
	metrics.Login(ctx, LoginSuccess)
	metrics.Login(ctx, LoginInvalid)
	metrics.Refresh(ctx)
	metrics.EmailSent(ctx)
	metrics.EmailFailed(ctx, "queue_full")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "contact_book_signups_total")
	assert.Contains(t, out, `outcome="invalid_credentials"`)
	assert.Contains(t, out, "contact_book_token_refreshes_total")
	assert.Contains(t, out, `reason="queue_full"`)
}

func TestAuthMetrics_NilIsNoop(t *testing.T) {
	var metrics *AuthMetrics

	assert.NotPanics(t, func() {
		metrics.Signup(context.Background())
		metrics.Login(context.Background(), LoginSuccess)
		metrics.EmailFailed(context.Background(), "smtp")
	})
}
