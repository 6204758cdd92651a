package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/usersvc/usersvc/internal/models"
	"github.com/usersvc/usersvc/internal/services"
)

func TestCreateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockUserCreator)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "success",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			mockSetup: func(m *MockUserCreator) {
				m.EXPECT().
					Create(gomock.Any(), "Ada Lovelace", "ada@example.com").
					Return(&models.User{ID: 4, Name: "Ada Lovelace", Email: "ada@example.com", CreatedAt: createdAt}, nil)
			},
			expectedCode: 201,
			expectedBody: map[string]any{"id": float64(4), "name": "Ada Lovelace", "email": "ada@example.com"},
		},
		{
			name:         "missing email",
			body:         `{"name":"X"}`,
			mockSetup:    func(m *MockUserCreator) {},
			expectedCode: 400,
			expectedBody: map[string]any{"error": "Name and email are required"},
		},
		{
			name:         "missing name",
			body:         `{"email":"x@example.com"}`,
			mockSetup:    func(m *MockUserCreator) {},
			expectedCode: 400,
			expectedBody: map[string]any{"error": "Name and email are required"},
		},
		{
			name:         "empty fields",
			body:         `{"name":"","email":""}`,
			mockSetup:    func(m *MockUserCreator) {},
			expectedCode: 400,
			expectedBody: map[string]any{"error": "Name and email are required"},
		},
		{
			name:         "invalid json",
			body:         `{invalid json}`,
			mockSetup:    func(m *MockUserCreator) {},
			expectedCode: 400,
			expectedBody: map[string]any{"error": "Name and email are required"},
		},
		{
			name: "duplicate email",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			mockSetup: func(m *MockUserCreator) {
				m.EXPECT().
					Create(gomock.Any(), "Ada Lovelace", "ada@example.com").
					Return(nil, services.ErrEmailAlreadyExists)
			},
			expectedCode: 409,
			expectedBody: map[string]any{"error": "Email already exists"},
		},
		{
			name: "store unavailable",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			mockSetup: func(m *MockUserCreator) {
				m.EXPECT().
					Create(gomock.Any(), "Ada Lovelace", "ada@example.com").
					Return(nil, services.ErrStoreUnavailable)
			},
			expectedCode: 503,
			expectedBody: map[string]any{"error": "Database unavailable"},
		},
		{
			name: "store failure",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			mockSetup: func(m *MockUserCreator) {
				m.EXPECT().
					Create(gomock.Any(), "Ada Lovelace", "ada@example.com").
					Return(nil, errors.New("boom"))
			},
			expectedCode: 500,
			expectedBody: map[string]any{"error": "Database error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserCreator(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewCreateUserHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}
