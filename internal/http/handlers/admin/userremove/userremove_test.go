package userremove

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	adminservice "github.com/magabrotheeeer/notes-keeper/internal/services/admin"
)

// Мок административного сервиса
type AdminServiceMock struct {
	mock.Mock
}

func (m *AdminServiceMock) RemoveUser(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUserRemoveHandler_ServeHTTP(t *testing.T) {
	adminMock := new(AdminServiceMock)
	logger := newNoopLogger()

	handler := New(logger, adminMock)

	tests := []struct {
		name           string
		mockErr        error
		wantStatusCode int
		wantErrorFlag  bool
		wantMessage    string
	}{
		{
			name:           "successful delete",
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantErrorFlag:  false,
			wantMessage:    "User Deleted",
		},
		{
			name:           "user not found",
			mockErr:        adminservice.ErrUserNotFound,
			wantStatusCode: http.StatusNotFound,
			wantErrorFlag:  true,
			wantMessage:    "User Not Found",
		},
		{
			name:           "service failure",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantErrorFlag:  true,
			wantMessage:    "Error Delete User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adminMock.ExpectedCalls = nil
			adminMock.Calls = nil

			adminMock.On("RemoveUser", mock.Anything, "uid-1").Return(tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodDelete, "/delete-user/uid-1", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "uid-1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantErrorFlag, got["error"])
			assert.Equal(t, tt.wantMessage, got["message"])

			adminMock.AssertExpectations(t)
		})
	}
}
