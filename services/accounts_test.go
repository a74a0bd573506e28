package services

import (
	"context"
	"strings"
	"testing"

	"carrental-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)
	ctx := context.Background()

	user, err := accounts.Signup(ctx, SignupInput{
		FullName: "Ada Lovelace",
		Email:    " Ada@X.com ",
		Password: "p1",
		Phone:    "0123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.UserID)
	assert.Equal(t, "ada@x.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "p1", user.Password)

	cost, err := bcrypt.Cost([]byte(user.Password))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestSignupExplicitRole(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)
	in := SignupInput{FullName: "Root", Email: "root@x.com", Password: "pw", Role: "admin"}

	_, err := accounts.Signup(context.Background(), in)
	assert.ErrorIs(t, err, ErrAdminSignup)
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	accounts.AllowAdminSignup = true
	user, err := accounts.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestSignupPasswordTooLong(t *testing.T) {
	accounts := NewAccounts(newTestDB(t))

	_, err := accounts.Signup(context.Background(), SignupInput{
		FullName: "A", Email: "a@x.com", Password: strings.Repeat("é", 60),
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)
	ctx := context.Background()

	in := SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"}
	_, err := accounts.Signup(ctx, in)
	require.NoError(t, err)

	in.Email = "A@X.COM"
	_, err = accounts.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrUserExists)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	accounts := NewAccounts(newTestDB(t))
	ctx := context.Background()

	_, err := accounts.Signup(ctx, SignupInput{FullName: "A", Email: "a@x.com", Password: "right"})
	require.NoError(t, err)

	user, err := accounts.Login(ctx, LoginInput{Email: "a@x.com", Password: "right"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = accounts.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "right"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
