package profile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/notes-keeper/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	authservice "github.com/magabrotheeeer/notes-keeper/internal/services/auth"
)

// Мок сервиса профилей
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestProfileHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock)

	storedUser := &models.User{
		UID:      "uid-1",
		FullName: "Alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}

	tests := []struct {
		name           string
		withAuth       bool
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantErrorFlag  bool
		wantMessage    string
	}{
		{
			name:           "successful profile fetch",
			withAuth:       true,
			mockUser:       storedUser,
			wantStatusCode: http.StatusOK,
			wantErrorFlag:  false,
			wantMessage:    "",
		},
		{
			name:           "missing user uid in context",
			withAuth:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantErrorFlag:  true,
			wantMessage:    "unauthorized",
		},
		{
			name:           "account deleted after token was issued",
			withAuth:       true,
			mockErr:        authservice.ErrUserNotFound,
			wantStatusCode: http.StatusUnauthorized,
			wantErrorFlag:  true,
			wantMessage:    "unauthorized",
		},
		{
			name:           "service failure",
			withAuth:       true,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantErrorFlag:  true,
			wantMessage:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.mockUser != nil || tt.mockErr != nil {
				authMock.On("GetProfile", mock.Anything, "uid-1").
					Return(tt.mockUser, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/get-user", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withAuth {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantErrorFlag, got["error"])
			assert.Equal(t, tt.wantMessage, got["message"])

			if tt.mockUser != nil {
				user, ok := got["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "alice@example.com", user["email"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
