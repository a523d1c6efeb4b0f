package service

import (
	"context"
	"testing"
	"time"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()

	user, err := env.services.Auth.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = env.services.Auth.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = env.services.Auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	token, err := env.services.Auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	principal, err := auth.NewTokenIssuer("test-secret", time.Hour).Parse(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, domain.RoleEmployee, principal.Role)
}

func TestAuth_Me(t *testing.T) {
	env := newStoredEnv(t)

	user, err := env.services.Auth.CreateUser(context.Background(), &dto.RegisterRequest{Username: "boss", Email: "boss@example.com", Password: "secret1"}, domain.RoleAdmin)
	require.NoError(t, err)

	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
	me, err := env.services.Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "boss", me.Username)
	assert.Equal(t, domain.RoleAdmin, me.Role)
}

func TestAuth_PasswordReset(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()

	_, err := env.services.Auth.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, env.services.Auth.RequestPasswordReset(ctx, &dto.ResetPasswordRequest{Email: "nobody@example.com"}))
	require.NoError(t, env.services.Auth.RequestPasswordReset(ctx, &dto.ResetPasswordRequest{Email: "alice@example.com"}))

	var reset domain.PasswordReset
	require.NoError(t, env.db.Where("email = ?", "alice@example.com").First(&reset).Error)
	assert.Len(t, reset.OTP, 6)

	err = env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: "000000x", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	require.NoError(t, env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: reset.OTP, NewPassword: "newpass1"}))

	_, err = env.services.Auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.services.Auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "newpass1"})
	assert.NoError(t, err)

	err = env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: reset.OTP, NewPassword: "again12"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func requestReset(t *testing.T, env *testEnv, email string) domain.PasswordReset {
	t.Helper()
	ctx := context.Background()

	_, err := env.services.Auth.Register(ctx, &dto.RegisterRequest{Username: "alice", Email: email, Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, env.services.Auth.RequestPasswordReset(ctx, &dto.ResetPasswordRequest{Email: email}))

	var reset domain.PasswordReset
	require.NoError(t, env.db.Where("email = ?", email).First(&reset).Error)
	return reset
}

func TestAuth_PasswordResetCodeExpires(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()
	reset := requestReset(t, env, "alice@example.com")

	stale := env.engine.now().Add(-30 * 24 * time.Hour)
	require.NoError(t, env.db.Model(&domain.PasswordReset{}).Where("id = ?", reset.ID).Update("created_at", stale).Error)

	err := env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: reset.OTP, NewPassword: "newpass1"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = env.services.Auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	assert.NoError(t, err)
}

func TestAuth_PasswordResetCodeRevokedAfterFailedAttempts(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()
	reset := requestReset(t, env, "alice@example.com")

	wrong := "000000"
	if reset.OTP == wrong {
		wrong = "111111"
	}

	for i := 0; i < 5; i++ {
		err := env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: wrong, NewPassword: "newpass1"})
		require.ErrorIs(t, err, domain.ErrInvalidField)
	}

	var remaining int64
	require.NoError(t, env.db.Model(&domain.PasswordReset{}).Where("email = ?", "alice@example.com").Count(&remaining).Error)
	assert.Zero(t, remaining)

	err := env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: reset.OTP, NewPassword: "newpass1"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestAuth_PasswordResetFailedAttemptsAreCounted(t *testing.T) {
	env := newStoredEnv(t)
	ctx := context.Background()
	reset := requestReset(t, env, "alice@example.com")

	wrong := "000000"
	if reset.OTP == wrong {
		wrong = "111111"
	}
	for i := 0; i < 2; i++ {
		err := env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: wrong, NewPassword: "newpass1"})
		require.ErrorIs(t, err, domain.ErrInvalidField)
	}

	var stored domain.PasswordReset
	require.NoError(t, env.db.First(&stored, reset.ID).Error)
	assert.Equal(t, 2, stored.Attempts)

	require.NoError(t, env.services.Auth.ConfirmPasswordReset(ctx, &dto.ResetPasswordConfirm{Email: "alice@example.com", OTP: reset.OTP, NewPassword: "newpass1"}))
}
