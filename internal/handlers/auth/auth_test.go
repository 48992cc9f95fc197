package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cookledger/internal/domain"
	"github.com/GlebRadaev/cookledger/internal/dto"
	authservice "github.com/GlebRadaev/cookledger/internal/service/authservice"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful registration",
			body: `{"login":"cook1","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "cook1", "testpassword", "").
					Return(&domain.User{ID: 1, Login: "cook1", Role: domain.RoleCook}, nil)
				service.EXPECT().GenerateToken(1, domain.RoleCook).Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"login":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing credentials",
			body:         `{"login":"cook1"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown role",
			body: `{"login":"cook1","password":"testpassword","role":"courier"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "cook1", "testpassword", "courier").
					Return(nil, authservice.ErrUnknownRole)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Weak password",
			body: `{"login":"cook1","password":"short12"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "cook1", "short12", "").
					Return(nil, authservice.ErrWeakPassword)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Login already taken",
			body: `{"login":"cook1","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "cook1", "testpassword", "").
					Return(nil, authservice.ErrLoginTaken)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Internal server error",
			body: `{"login":"cook1","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "cook1", "testpassword", "").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "Token generation error",
			body: `{"login":"cook1","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "cook1", "testpassword", "").
					Return(&domain.User{ID: 1, Login: "cook1", Role: domain.RoleCook}, nil)
				service.EXPECT().GenerateToken(1, domain.RoleCook).Return("", errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Register(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.AuthResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "token", body.Token)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful login",
			body: `{"login":"cook1","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "cook1", "testpassword").
					Return(&domain.User{ID: 1, Login: "cook1", Role: domain.RoleCook}, nil)
				service.EXPECT().GenerateToken(1, domain.RoleCook).Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"login":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Invalid credentials",
			body: `{"login":"cook1","password":"wrong"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "cook1", "wrong").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Internal server error",
			body: `{"login":"cook1","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "cook1", "testpassword").
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Login(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
