package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bloggy/internal/config"
	"bloggy/internal/mail"
	"bloggy/internal/models"
	"bloggy/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func authTestServer(mockRepo *MockUserRepository) *Server {
	cfg := &config.Config{JWTSecret: "test_secret", Domain: "http://localhost:3000"}
	return &Server{
		config:       cfg,
		userRepo:     mockRepo,
		tokenService: service.NewTokenService(mockRepo, mail.LogSender{}, cfg),
	}
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!abc",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				m.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
				// Verification token issuance loads and updates the new user.
				m.On("GetByID", mock.Anything, mock.Anything).Return(&models.User{Email: "test@example.com"}, nil)
				m.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"username": "testuser",
				"email":    "exists@example.com",
				"password": "Password123!abc",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "weak",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "testuser",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := authTestServer(mockRepo)
			app.Post("/signup", s.Signup)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req, -1)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := authTestServer(mockRepo)
	app.Post("/login", s.Login)

	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	body, _ := json.Marshal(map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyEmail(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)

	tests := []struct {
		name           string
		token          string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name:  "Success",
			token: "validtoken",
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByVerifyToken", mock.Anything, "validtoken").
					Return(&models.User{ID: 1, VerifyToken: "validtoken", VerifyTokenExpiry: &expiry}, nil)
				m.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Unknown Token",
			token: "bogus",
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByVerifyToken", mock.Anything, "bogus").Return(nil, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Token",
			token:          "",
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := authTestServer(mockRepo)
			app.Post("/verifyemail", s.VerifyEmail)

			body, _ := json.Marshal(map[string]string{"token": tt.token})
			req := httptest.NewRequest(http.MethodPost, "/verifyemail", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req, -1)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := authTestServer(mockRepo)
	app.Post("/forgotpassword", s.ForgotPassword)

	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	body, _ := json.Marshal(map[string]string{"email": "ghost@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/forgotpassword", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
