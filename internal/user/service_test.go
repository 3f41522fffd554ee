package user_test

import (
	"context"
	"testing"

	"github.com/linkmetry/linkmetry/internal/store"
	"github.com/linkmetry/linkmetry/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new account", func(t *testing.T) {
		svc := user.NewService(store.NewMemoryUserStore())

		u, err := svc.Signup(ctx, "Ada", "Lovelace", "ada@example.com", "secret")

		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.NotEqual(t, "secret", u.PasswordHash, "password must be stored hashed")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc := user.NewService(store.NewMemoryUserStore())

		_, err := svc.Signup(ctx, "Ada", "", "ada@example.com", "secret")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "Eve", "", "ada@example.com", "other")

		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc := user.NewService(store.NewMemoryUserStore())

		created, err := svc.Signup(ctx, "Ada", "", "ada@example.com", "secret")
		require.NoError(t, err)

		u, err := svc.Login(ctx, "ada@example.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := user.NewService(store.NewMemoryUserStore())

		_, err := svc.Signup(ctx, "Ada", "", "ada@example.com", "secret")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "ada@example.com", "wrong")

		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same error as wrong password", func(t *testing.T) {
		svc := user.NewService(store.NewMemoryUserStore())

		_, err := svc.Login(ctx, "nobody@example.com", "secret")

		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
