package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bloggy/internal/config"
	"bloggy/internal/mail"
	"bloggy/internal/middleware"
	"bloggy/internal/models"
	"bloggy/internal/repository"
	"bloggy/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenPurpose identifies what an email token is for.
type TokenPurpose string

const (
	// PurposeVerify is an email address verification token.
	PurposeVerify TokenPurpose = "verify"
	// PurposeReset is a password reset token.
	PurposeReset TokenPurpose = "reset"
)

// tokenTTL is how long an issued email token stays valid.
const tokenTTL = time.Hour

// emailSendTimeout bounds the background delivery of a single email.
const emailSendTimeout = 15 * time.Second

// TokenService issues and consumes single-use email tokens for account
// verification and password resets. A user holds at most one live token per
// purpose; issuing again overwrites the previous token.
type TokenService struct {
	userRepo repository.UserRepository
	sender   mail.Sender
	domain   string
}

// NewTokenService returns a new TokenService.
func NewTokenService(userRepo repository.UserRepository, sender mail.Sender, cfg *config.Config) *TokenService {
	return &TokenService{
		userRepo: userRepo,
		sender:   sender,
		domain:   cfg.Domain,
	}
}

// Issue derives a fresh token for the user, stores it with a one hour expiry
// and dispatches the corresponding email. Delivery happens in the background
// and is best-effort: a relay failure is logged and counted but never
// surfaces to the caller.
func (s *TokenService) Issue(ctx context.Context, userID uint, purpose TokenPurpose) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	token, err := deriveToken(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		return models.NewInternalError(err)
	}
	hashedEmail, err := deriveToken(user.Email)
	if err != nil {
		return models.NewInternalError(err)
	}

	expiry := time.Now().Add(tokenTTL)
	user.HashedEmail = hashedEmail
	switch purpose {
	case PurposeVerify:
		user.VerifyToken = token
		user.VerifyTokenExpiry = &expiry
	case PurposeReset:
		user.ForgotPasswordToken = token
		user.ForgotPasswordTokenExpiry = &expiry
	default:
		return models.NewInternalError(fmt.Errorf("unknown token purpose %q", purpose))
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.dispatch(ctx, user.Email, purpose, token, hashedEmail)
	return nil
}

// ConsumeVerify marks the token's owner as verified. The token is cleared on
// success so it cannot be replayed.
func (s *TokenService) ConsumeVerify(ctx context.Context, token string) (*models.User, error) {
	user, err := s.userRepo.GetByVerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewValidationError("Invalid token")
	}
	if user.VerifyTokenExpiry == nil || time.Now().After(*user.VerifyTokenExpiry) {
		return nil, models.NewExpiredError("Token has expired")
	}

	user.IsVerified = true
	user.VerifyToken = ""
	user.VerifyTokenExpiry = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword sets a new password for the token's owner. Validation, token
// check and password change are a single gated operation; the token is
// cleared on success.
func (s *TokenService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewValidationError("Invalid token")
	}
	if user.ForgotPasswordTokenExpiry == nil || time.Now().After(*user.ForgotPasswordTokenExpiry) {
		return models.NewExpiredError("Token has expired")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	user.ForgotPasswordToken = ""
	user.ForgotPasswordTokenExpiry = nil
	return s.userRepo.Update(ctx, user)
}

// dispatch sends the token email in the background. The spawned goroutine
// gets a detached context so an aborted HTTP request does not cancel an
// email already in flight.
func (s *TokenService) dispatch(ctx context.Context, to string, purpose TokenPurpose, token, hashedEmail string) {
	var data mail.LinkEmailData
	var subject string
	switch purpose {
	case PurposeVerify:
		subject = "Verify your email"
		data = mail.LinkEmailData{
			Title:       "Email Verification",
			Heading:     "Verify Your Email",
			Intro:       "Thank you for signing up! Please confirm your email address to activate your account.",
			Action:      "verify your email",
			ButtonLabel: "Verify Email",
			Link:        fmt.Sprintf("%s/verifyemail?token=%s&id=%s", s.domain, token, hashedEmail),
		}
	case PurposeReset:
		subject = "Reset your password"
		data = mail.LinkEmailData{
			Title:       "Password Reset",
			Heading:     "Reset Your Password",
			Intro:       "We received a request to reset your password. If this was not you, you can safely ignore this email.",
			Action:      "reset your password",
			ButtonLabel: "Reset Password",
			Link:        fmt.Sprintf("%s/resetpassword?token=%s&id=%s", s.domain, token, hashedEmail),
		}
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emailSendTimeout)
	go func() {
		defer cancel()

		body, err := mail.RenderLinkEmail(data)
		if err == nil {
			err = s.sender.Send(sendCtx, to, subject, body)
		}
		if err != nil {
			middleware.EmailDispatches.WithLabelValues(string(purpose), "failure").Inc()
			middleware.Logger.ErrorContext(sendCtx, "email dispatch failed",
				"purpose", string(purpose), "error", err)
			return
		}
		middleware.EmailDispatches.WithLabelValues(string(purpose), "success").Inc()
	}()
}

// deriveToken bcrypt-hashes the input and strips the hash down to
// alphanumerics so it survives URL query strings unescaped.
func deriveToken(input string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, len(hash))
	for _, c := range hash {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			out = append(out, c)
		}
	}
	return string(out), nil
}
