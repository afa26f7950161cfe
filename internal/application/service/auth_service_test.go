package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*fixture, *AuthService, *utils.JWTManager) {
	f := newFixture(t)
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return f, NewAuthService(f.repos.Users, f.repos.Businesses, jwtManager), jwtManager
}

func TestRegisterAndLogin(t *testing.T) {
	f, auth, jwtManager := newAuthFixture(t)

	user, err := auth.Register(f.ctx, &RegisterInput{
		BusinessID: &f.business.ID,
		FirstName:  "Ada",
		Email:      "ada@example.com",
		Password:   "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, user.Role)
	assert.NotEqual(t, "correct horse", user.Password)

	out, err := auth.Login(f.ctx, &LoginInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotNil(t, claims.BusinessID)
	assert.Equal(t, f.business.ID, *claims.BusinessID)
	assert.Equal(t, []string{entity.RoleCashier}, claims.Roles)

	refreshed, err := auth.RefreshToken(f.ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	current, err := auth.GetCurrentUser(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", current.Email)
}

func TestRegisterFailures(t *testing.T) {
	f, auth, _ := newAuthFixture(t)
	_, err := auth.Register(f.ctx, &RegisterInput{FirstName: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	cases := map[string]struct {
		input *RegisterInput
		want  error
	}{
		"duplicate email":  {&RegisterInput{FirstName: "A", Email: "ada@example.com", Password: "password1"}, apperror.ErrConflict},
		"short password":   {&RegisterInput{FirstName: "A", Email: "b@example.com", Password: "short"}, apperror.ErrInvalidArgument},
		"bad email":        {&RegisterInput{FirstName: "A", Email: "nope", Password: "password1"}, apperror.ErrInvalidArgument},
		"bad role":         {&RegisterInput{FirstName: "A", Email: "c@example.com", Password: "password1", Role: "owner"}, apperror.ErrInvalidArgument},
		"unknown business": {&RegisterInput{BusinessID: ptr(uuid.New()), FirstName: "A", Email: "d@example.com", Password: "password1"}, apperror.ErrNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Register(f.ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f, auth, _ := newAuthFixture(t)
	_, err := auth.Register(f.ctx, &RegisterInput{FirstName: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = auth.Login(f.ctx, &LoginInput{Email: "ada@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = auth.Login(f.ctx, &LoginInput{Email: "bob@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = auth.RefreshToken(f.ctx, "garbage")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func ptr[T any](v T) *T {
	return &v
}
