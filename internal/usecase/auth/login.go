package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/agenda-online/internal/audit"
	"github.com/BruksfildServices01/agenda-online/internal/httperr"
	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/validators"
)

const CodeInvalidCredentials = "invalid_credentials"

var ErrUserNotFound = errors.New("auth: user not found")

type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	repo  UserRepository
	audit *audit.Dispatcher
}

func NewLogin(repo UserRepository, audit *audit.Dispatcher) *Login {
	return &Login{repo: repo, audit: audit}
}

// Execute checks the credentials and returns the matching user. Unknown
// email and wrong password fail with the same business error.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*models.User, error) {
	email := validators.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, httperr.ErrBusiness(CodeInvalidCredentials)
	}

	user, err := uc.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		uc.failed(email)
		return nil, httperr.ErrBusiness(CodeInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.failed(email)
		return nil, httperr.ErrBusiness(CodeInvalidCredentials)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return user, nil
}

func (uc *Login) failed(email string) {
	uc.audit.Dispatch(audit.Event{
		Action:   "login_failed",
		Entity:   "user",
		Metadata: map[string]any{"email": email},
	})
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
