package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental-server/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const PasswordCost = 10

type SignupInput struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Phone    string `json:"phone" validate:"max=32"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Accounts struct {
	DB *gorm.DB
	// AllowAdminSignup permits role "admin" in SignupInput. Off by default;
	// production admins are provisioned directly in the users table.
	AllowAdminSignup bool
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{DB: db}
}

func (s *Accounts) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if models.Role(in.Role) == models.RoleAdmin && !s.AllowAdminSignup {
		return nil, ErrAdminSignup
	}

	email := normalizeEmail(in.Email)
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
	}

	user := models.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    email,
		Password: string(hash),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		// lost the race against a concurrent signup
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login reports ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *Accounts) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
