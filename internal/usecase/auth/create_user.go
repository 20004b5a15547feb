package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/validators"
)

const minPasswordLength = 6

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type CreateUser struct {
	repo UserRepository
}

func NewCreateUser(repo UserRepository) *CreateUser {
	return &CreateUser{repo: repo}
}

// Execute provisions a staff account. Used by the createuser command.
func (uc *CreateUser) Execute(ctx context.Context, in CreateUserInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !validators.IsEmail(email) {
		return nil, fmt.Errorf("invalid email %q", in.Email)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must have at least %d characters", minPasswordLength)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = "admin"
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
