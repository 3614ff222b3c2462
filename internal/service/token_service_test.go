package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"bloggy/internal/config"
	"bloggy/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

// captureSender records delivered mail on a channel so tests can wait for the
// background dispatch.
type captureSender struct {
	ch chan sentMail
}

func newCaptureSender() *captureSender {
	return &captureSender{ch: make(chan sentMail, 1)}
}

func (s *captureSender) Send(_ context.Context, to, subject, htmlBody string) error {
	s.ch <- sentMail{to: to, subject: subject, body: htmlBody}
	return nil
}

func (s *captureSender) wait(t *testing.T) sentMail {
	t.Helper()
	select {
	case m := <-s.ch:
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for email dispatch")
		return sentMail{}
	}
}

func tokenTestConfig() *config.Config {
	return &config.Config{Domain: "http://localhost:3000"}
}

func isAlphanumeric(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func TestTokenServiceIssueVerify(t *testing.T) {
	var updated *models.User
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Email: "alice@example.com"}, nil
	}
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	sender := newCaptureSender()
	svc := NewTokenService(users, sender, tokenTestConfig())

	if err := svc.Issue(context.Background(), 1, PurposeVerify); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("user row was not updated")
	}
	if updated.VerifyToken == "" || !isAlphanumeric(updated.VerifyToken) {
		t.Fatalf("verify token %q is not a non-empty alphanumeric string", updated.VerifyToken)
	}
	if updated.VerifyTokenExpiry == nil || time.Until(*updated.VerifyTokenExpiry) > time.Hour {
		t.Fatalf("verify token expiry %v is not within one hour", updated.VerifyTokenExpiry)
	}
	if updated.HashedEmail == "" {
		t.Fatal("hashed email correlation id was not set")
	}

	m := sender.wait(t)
	if m.to != "alice@example.com" {
		t.Fatalf("email sent to %q", m.to)
	}
	if !strings.Contains(m.body, "/verifyemail?token="+updated.VerifyToken) {
		t.Fatal("email body does not carry the verification link")
	}
}

func TestTokenServiceIssueReset(t *testing.T) {
	var updated *models.User
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Email: "bob@example.com"}, nil
	}
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	sender := newCaptureSender()
	svc := NewTokenService(users, sender, tokenTestConfig())

	if err := svc.Issue(context.Background(), 2, PurposeReset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.ForgotPasswordToken == "" {
		t.Fatal("reset token was not stored")
	}
	if updated.VerifyToken != "" {
		t.Fatal("reset issuance must not touch the verify token")
	}

	m := sender.wait(t)
	if !strings.Contains(m.body, "/resetpassword?token="+updated.ForgotPasswordToken) {
		t.Fatal("email body does not carry the reset link")
	}
}

func TestTokenServiceConsumeVerify(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)
	stored := &models.User{ID: 1, VerifyToken: "abc123", VerifyTokenExpiry: &expiry}

	var updated *models.User
	users := noopUserRepo()
	users.getByVerifyTokenFn = func(_ context.Context, token string) (*models.User, error) {
		if token == stored.VerifyToken {
			return stored, nil
		}
		return nil, nil
	}
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	svc := NewTokenService(users, newCaptureSender(), tokenTestConfig())

	user, err := svc.ConsumeVerify(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsVerified {
		t.Fatal("user was not marked verified")
	}
	if updated.VerifyToken != "" || updated.VerifyTokenExpiry != nil {
		t.Fatal("token was not cleared on consumption")
	}
}

func TestTokenServiceConsumeVerifyReplay(t *testing.T) {
	// After consumption the stored token is empty, so the lookup misses.
	users := noopUserRepo()
	svc := NewTokenService(users, newCaptureSender(), tokenTestConfig())

	_, err := svc.ConsumeVerify(context.Background(), "abc123")
	if errorCodeOf(err) != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR on unknown token, got %v", err)
	}
}

func TestTokenServiceConsumeVerifyExpired(t *testing.T) {
	expiry := time.Now().Add(-time.Minute)
	users := noopUserRepo()
	users.getByVerifyTokenFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1, VerifyToken: "abc123", VerifyTokenExpiry: &expiry}, nil
	}
	svc := NewTokenService(users, newCaptureSender(), tokenTestConfig())

	_, err := svc.ConsumeVerify(context.Background(), "abc123")
	if errorCodeOf(err) != "EXPIRED" {
		t.Fatalf("expected EXPIRED, got %v", err)
	}
}

func TestTokenServiceResetPassword(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)
	stored := &models.User{ID: 1, ForgotPasswordToken: "tok42", ForgotPasswordTokenExpiry: &expiry}

	var updated *models.User
	users := noopUserRepo()
	users.getByResetTokenFn = func(_ context.Context, token string) (*models.User, error) {
		if token == stored.ForgotPasswordToken {
			return stored, nil
		}
		return nil, nil
	}
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	svc := NewTokenService(users, newCaptureSender(), tokenTestConfig())

	const newPassword = "Sup3rSecret!Pass"
	if err := svc.ResetPassword(context.Background(), "tok42", newPassword); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)); err != nil {
		t.Fatal("stored password hash does not match the new password")
	}
	if updated.ForgotPasswordToken != "" || updated.ForgotPasswordTokenExpiry != nil {
		t.Fatal("reset token was not cleared")
	}
}

func TestTokenServiceResetPasswordWeakPassword(t *testing.T) {
	users := noopUserRepo()
	users.getByResetTokenFn = func(context.Context, string) (*models.User, error) {
		t.Fatal("token must not be consulted before the password validates")
		return nil, nil
	}
	svc := NewTokenService(users, newCaptureSender(), tokenTestConfig())

	err := svc.ResetPassword(context.Background(), "tok42", "short")
	if errorCodeOf(err) != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestTokenServiceResetPasswordExpired(t *testing.T) {
	expiry := time.Now().Add(-time.Minute)
	users := noopUserRepo()
	users.getByResetTokenFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1, ForgotPasswordToken: "tok42", ForgotPasswordTokenExpiry: &expiry}, nil
	}
	svc := NewTokenService(users, newCaptureSender(), tokenTestConfig())

	err := svc.ResetPassword(context.Background(), "tok42", "Sup3rSecret!Pass")
	if errorCodeOf(err) != "EXPIRED" {
		t.Fatalf("expected EXPIRED, got %v", err)
	}
}
