package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/matiasmngz/users-api/internal/config"
	"github.com/matiasmngz/users-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "guard-test-secret"

func signToken(t *testing.T, roles []string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       uint(1),
		"username": "ana",
		"roles":    roles,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newGuardedApp(required ...string) *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	app.Get("/guarded", JWTProtected(cfg), RolesRequired(required...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	app := newGuardedApp(models.RoleAdministrador)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, ""))
}

func TestInvalidTokenIsUnauthorized(t *testing.T) {
	app := newGuardedApp(models.RoleAdministrador)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "not-a-token"))
}

func TestInsufficientRoleIsForbidden(t *testing.T) {
	app := newGuardedApp(models.RoleAdministrador)
	token := signToken(t, []string{models.RoleGeneral})
	assert.Equal(t, fiber.StatusForbidden, request(t, app, token))
}

func TestIntersectingRolePasses(t *testing.T) {
	app := newGuardedApp(models.RoleAdministrador)
	token := signToken(t, []string{models.RoleGeneral, models.RoleAdministrador})
	assert.Equal(t, fiber.StatusOK, request(t, app, token))
}

func TestEmptyRequirementOnlyNeedsAuthentication(t *testing.T) {
	app := newGuardedApp()
	token := signToken(t, nil)
	assert.Equal(t, fiber.StatusOK, request(t, app, token))
}

func TestEmptyRoleSetIsForbidden(t *testing.T) {
	app := newGuardedApp(models.RoleGeneral)
	token := signToken(t, nil)
	assert.Equal(t, fiber.StatusForbidden, request(t, app, token))
}
