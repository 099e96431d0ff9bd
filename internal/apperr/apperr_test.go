package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{Validation("missing id"), fiber.StatusBadRequest},
		{Unauthorized("bad credentials"), fiber.StatusUnauthorized},
		{Forbidden("no role"), fiber.StatusForbidden},
		{NotFound("user %d", 7), fiber.StatusNotFound},
		{Conflict("duplicate"), fiber.StatusConflict},
		{errors.New("db exploded"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, StatusCode(tc.err), tc.err.Error())
	}
}

func TestMessagesCarryNoKindPrefix(t *testing.T) {
	err := NotFound("user %d not exists", 7)
	assert.Equal(t, "user 7 not exists", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	err := fmt.Errorf("get user: %w", Conflict("duplicate"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, fiber.StatusConflict, StatusCode(err))
}
