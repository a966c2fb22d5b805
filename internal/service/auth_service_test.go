package service

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), testSecret, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", " Ana@Example.com ", "s3cret-pass", domain.RoleCoach)
	require.NoError(t, err)
	require.False(t, user.ID.IsZero())
	require.Equal(t, "ana@example.com", user.Email)
	require.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, "Ana again", "ana@example.com", "another-pass", domain.RoleClient)
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	token, loggedIn, err := svc.Login(ctx, "ANA@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, user.ID.Hex(), claims.UserID)
	require.Equal(t, domain.RoleCoach, claims.Role)
	require.Equal(t, tokenIssuer, claims.Issuer)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(memory.NewStore().Users(), testSecret, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Bo", "bo@example.com", "right-pass", domain.RoleClient)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "bo@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "right-pass")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = svc.Register(ctx, "", "x@example.com", "pass", domain.RoleClient)
	require.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	require.Panics(t, func() { NewAuthService(memory.NewStore().Users(), "", time.Hour) })
}
