package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/matiasmngz/users-api/internal/apperr"
	"github.com/matiasmngz/users-api/internal/dto"
	"github.com/matiasmngz/users-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	users := NewUserService(db, cfg)
	return NewAuthService(db, users, cfg), users
}

func TestSignupDelegatesToCreate(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Signup(&dto.SignupRequest{Username: "ana", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.Equal(t, []string{models.RoleGeneral}, user.RoleNames())

	// conflicts pass through unchanged
	_, err = auth.Signup(&dto.SignupRequest{Username: "ana", Email: "other@x.com", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSigninByUsernameAndEmail(t *testing.T) {
	auth, users := newAuthService(t)
	createTestUser(t, users, "ana", "a@x.com", "pw1")

	resp, err := auth.Signin(&dto.SigninRequest{Username: "ana", Password: "pw1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.Username)
	assert.Equal(t, []string{models.RoleGeneral}, resp.User.Roles)

	resp, err = auth.Signin(&dto.SigninRequest{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestSigninEmailTakesPrecedence(t *testing.T) {
	auth, users := newAuthService(t)
	createTestUser(t, users, "ana", "a@x.com", "pw1")
	createTestUser(t, users, "bob", "b@x.com", "pw2")

	// ana's email plus bob's username resolves ana
	resp, err := auth.Signin(&dto.SigninRequest{Username: "bob", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestSigninValidationAndLookupFailures(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Signin(&dto.SigninRequest{Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = auth.Signin(&dto.SigninRequest{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSigninWrongPasswordDoesNotMutate(t *testing.T) {
	auth, users := newAuthService(t)
	user := createTestUser(t, users, "ana", "a@x.com", "pw1")
	_, err := users.Update(map[string]any{"status": models.StatusInactive}, user.ID)
	require.NoError(t, err)

	_, err = auth.Signin(&dto.SigninRequest{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	stored, err := users.Get(user.ID, models.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, stored.Status, "failed signin must not reactivate")
}

func TestSigninReactivatesInactiveAccount(t *testing.T) {
	auth, users := newAuthService(t)
	user := createTestUser(t, users, "ana", "a@x.com", "pw1")
	_, err := users.Update(map[string]any{"status": models.StatusInactive}, user.ID)
	require.NoError(t, err)

	_, err = auth.Signin(&dto.SigninRequest{Username: "ana", Password: "pw1"})
	require.NoError(t, err)

	stored, err := users.Get(user.ID, models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, stored.Status, "successful signin reactivates the account")
}

func TestSigninTokenClaims(t *testing.T) {
	auth, users := newAuthService(t)
	user := createTestUser(t, users, "ana", "a@x.com", "pw1")
	_, err := users.UpdateProfile(map[string]any{"name": "Ana", "lastname": "Gomez"}, user.ID)
	require.NoError(t, err)

	resp, err := auth.Signin(&dto.SigninRequest{Username: "ana", Password: "pw1"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (any, error) {
		return []byte(testConfig().JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, user.ID, claims["id"])
	assert.Equal(t, "ana", claims["username"])
	assert.Equal(t, "a@x.com", claims["email"])
	assert.Equal(t, []any{models.RoleGeneral}, claims["roles"])

	details, ok := claims["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ana", details["name"])
	assert.Equal(t, "Gomez", details["lastname"])

	assert.Equal(t, "Ana", resp.User.Details.Name, "claim payload mirrors the token")
}
