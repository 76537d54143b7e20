package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "fintrack/internal/delivery/context"
	domainerrors "fintrack/internal/domain/errors"
	"fintrack/internal/domain/service"
	mockSvc "fintrack/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	identityID := uuid.New()
	validClaims := &service.Claims{
		Email:            "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: identityID.String()},
	}

	tests := []struct {
		name       string
		header     string
		setup      func(m *mockSvc.MockTokenService)
		wantErr    bool
		wantDetail string
	}{
		{name: "missing header", wantErr: true, wantDetail: "Authorization header is missing"},
		{name: "not bearer", header: "Basic abc", wantErr: true, wantDetail: "must be Bearer token"},
		{name: "empty bearer", header: "Bearer   ", wantErr: true, wantDetail: "Bearer token is empty"},
		{
			name:   "verification fails",
			header: "Bearer bad.token",
			setup: func(m *mockSvc.MockTokenService) {
				m.On("Verify", "bad.token").Return(nil, errors.Wrap(domainerrors.ErrUnauthorized, "expired"))
			},
			wantErr:    true,
			wantDetail: "Invalid or expired token",
		},
		{
			name:   "bad subject",
			header: "Bearer odd.token",
			setup: func(m *mockSvc.MockTokenService) {
				m.On("Verify", "odd.token").Return(&service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "nope"}}, nil)
			},
			wantErr:    true,
			wantDetail: "Invalid identity in token",
		},
		{
			name:   "valid token",
			header: "Bearer good.token",
			setup: func(m *mockSvc.MockTokenService) {
				m.On("Verify", "good.token").Return(validClaims, nil)
			},
		},
		{
			name:   "scheme is case insensitive",
			header: "bearer good.token",
			setup: func(m *mockSvc.MockTokenService) {
				m.On("Verify", "good.token").Return(validClaims, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockSvc.NewMockTokenService(t)
			if tt.setup != nil {
				tt.setup(tokenSvc)
			}
			mw := NewAuthMiddleware(tokenSvc)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			err := mw.Authenticate(func(c echo.Context) error {
				called = true
				id, ok := deliverycontext.GetIdentityID(c)
				assert.True(t, ok)
				assert.Equal(t, identityID, id)
				assert.Equal(t, "alice@example.com", deliverycontext.GetClaims(c).Email)

				return nil
			})(c)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.True(t, called)

				return
			}

			assert.False(t, called)
			require.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
			assert.Contains(t, appErr.Details(), tt.wantDetail)
		})
	}
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		hidden      string
	}{
		{
			name:        "client error keeps message",
			err:         errors.WithStack(domainerrors.ErrDuplicateEmail),
			wantStatus:  http.StatusConflict,
			wantCode:    "DUPLICATE_EMAIL",
			wantMessage: "User with this email already exists",
		},
		{
			name:        "database failure is generic",
			err:         domainerrors.NewDatabaseExecuteError(errors.New("pq: password authentication failed for user admin"), "failed to find identity"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error",
			hidden:      "password authentication",
		},
		{
			name:        "hash failure is generic",
			err:         errors.Wrap(domainerrors.ErrPasswordHashFailed, "entropy source broken"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error",
			hidden:      "entropy",
		},
		{
			name:        "unclassified error is generic",
			err:         errors.New("nil pointer somewhere"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error",
			hidden:      "nil pointer",
		},
		{
			name:        "echo not found",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "HTTP_ERROR",
			wantMessage: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			mw.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `"code":"`+tt.wantCode+`"`)
			assert.Contains(t, body, tt.wantMessage)
			if tt.hidden != "" {
				assert.NotContains(t, body, tt.hidden)
			}
		})
	}
}
