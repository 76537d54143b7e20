package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestScopedValues(t *testing.T) {
	ctx := context.Background()
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Nil(t, GetLogger(ctx))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	scoped := fallback.With(slog.String("request_id", "req-1"))
	ctx = WithLogger(WithRequestID(ctx, "req-1"), scoped)

	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestIdentityValues(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetIdentityID(c)
	assert.False(t, ok)
	assert.Nil(t, GetClaims(c))

	SetIdentity(c, uuid.Nil, &service.Claims{})
	_, ok = GetIdentityID(c)
	assert.False(t, ok, "nil id is not an identity")

	id := uuid.New()
	claims := &service.Claims{Email: "alice@example.com"}
	SetIdentity(c, id, claims)

	got, ok := GetIdentityID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Same(t, claims, GetClaims(c))
}
