package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/userauth-dev/userauth/internal/config"
	"github.com/userauth-dev/userauth/internal/domain"
	"github.com/userauth-dev/userauth/internal/errors"
	"github.com/userauth-dev/userauth/internal/logger"
	"github.com/userauth-dev/userauth/internal/mailer"
)

const (
	minEmailLen    = 6
	maxEmailLen    = 40
	minPasswordLen = 6
	maxPasswordLen = 25
)

type UserService interface {
	Register(ctx context.Context, creds domain.Credentials, details map[string]any) (domain.User, error)
	VerifyCredentials(ctx context.Context, creds domain.Credentials) (domain.User, error)
	ConfirmEmail(ctx context.Context, tokenStr string) (domain.Email, error)
}

type UserStorage interface {
	SaveUser(ctx context.Context, user domain.User) error
	User(ctx context.Context, email domain.Email) (domain.User, error)
	Confirm(ctx context.Context, email domain.Email) error
}

type ConfirmationTokens interface {
	Issue(email string) (string, error)
	Validate(tokenStr string, maxAge time.Duration) (string, error)
}

type Users struct {
	storage UserStorage
	tokens  ConfirmationTokens
	mail    mailer.Sender
	cfg     *config.Config
}

func NewUsers(storage UserStorage, tokens ConfirmationTokens, mail mailer.Sender, cfg *config.Config) *Users {
	return &Users{
		storage: storage,
		tokens:  tokens,
		mail:    mail,
		cfg:     cfg,
	}
}

// Register validates and creates a new unconfirmed account, then emails a
// confirmation link. The plaintext password exists only long enough to be
// hashed; it is never stored, returned or logged.
func (s *Users) Register(ctx context.Context, creds domain.Credentials, details map[string]any) (domain.User, error) {
	if err := validateEmail(creds.Email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(creds.Password); err != nil {
		return domain.User{}, err
	}

	// Proactive duplicate check for fast user-facing feedback. The unique
	// index remains the authority: a racing insert is caught below.
	_, err := s.storage.User(ctx, creds.Email)
	if err == nil {
		return domain.User{}, errors.Conflict("Email already registered")
	}
	if !errors.IsNotFound(err) {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.ErrorContext(ctx, "failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{
		Email:     creds.Email,
		PassHash:  string(passHash),
		Confirmed: false,
		Details:   details,
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		// a conflict here means we lost the race after the proactive check;
		// both paths surface as the same duplicate-email error
		return domain.User{}, err
	}

	s.sendConfirmationLink(ctx, user.Email)

	return user, nil
}

// sendConfirmationLink issues a confirmation token and emails it. The
// account is already persisted, so delivery failure is logged rather than
// failing the registration.
func (s *Users) sendConfirmationLink(ctx context.Context, email domain.Email) {
	tokenStr, err := s.tokens.Issue(email)
	if err != nil {
		logger.Log.ErrorContext(ctx, "failed to issue confirmation token", "email", email, "error", err)
		return
	}

	link := fmt.Sprintf("%s/confirm/%s", s.cfg.Public.BaseURL, tokenStr)
	body := fmt.Sprintf("Hello,\n\nPlease confirm your email address by following the link below.\n\n%s\n\nIf you did not request this, please ignore this email.\n", link)

	if err := s.mail.Send(ctx, email, "Please confirm your email address", body); err != nil {
		logger.Log.ErrorContext(ctx, "failed to send confirmation email", "email", email, "error", err)
	}
}

// VerifyCredentials checks a login attempt. An unknown email and a wrong
// password yield the same error so accounts cannot be enumerated.
func (s *Users) VerifyCredentials(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	user, err := s.storage.User(ctx, creds.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, errors.Unauthorized("Invalid email and/or password.")
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return domain.User{}, errors.Unauthorized("Invalid email and/or password.")
	}

	return user, nil
}

// ConfirmEmail validates a confirmation token and marks the account it was
// issued for as confirmed.
func (s *Users) ConfirmEmail(ctx context.Context, tokenStr string) (domain.Email, error) {
	email, err := s.tokens.Validate(tokenStr, s.cfg.TokenMaxAge())
	if err != nil {
		return "", errors.BadRequest("The confirmation link is invalid or has expired.")
	}
	if err := s.storage.Confirm(ctx, email); err != nil {
		return "", err
	}
	return email, nil
}

func validateEmail(email domain.Email) error {
	if len(email) < minEmailLen || len(email) > maxEmailLen {
		return &errors.ValidationError{Field: "email", Message: fmt.Sprintf("must be between %d and %d characters", minEmailLen, maxEmailLen)}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &errors.ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return &errors.ValidationError{Field: "password", Message: fmt.Sprintf("must be between %d and %d characters", minPasswordLen, maxPasswordLen)}
	}
	return nil
}
