package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/matiasmngz/users-api/internal/dto"
	"github.com/matiasmngz/users-api/internal/models"
	"github.com/matiasmngz/users-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetByID returns the ACTIVE user with the given id.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Get(id, models.StatusActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetByIDAndStatus returns the user matching id and status jointly.
func (h *UserHandler) GetByIDAndStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Get(id, c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// List returns all ACTIVE users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.GetAll(models.StatusActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "total": len(users)})
}

// ListByStatus returns all users in the requested status.
func (h *UserHandler) ListByStatus(c *fiber.Ctx) error {
	users, err := h.userService.GetAll(c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "total": len(users)})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	newUser, err := h.userService.Create(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"newUser": newUser})
}

// Update applies a partial patch; the body is parsed as a raw object so
// non-whitelisted keys are dropped silently rather than rejected.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch map[string]any
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	updateUser, err := h.userService.Update(patch, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}

func (h *UserHandler) UpdateEmail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	updateUser, err := h.userService.UpdateEmail(req.Email, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}

func (h *UserHandler) RestartPassword(c *fiber.Ctx) error {
	var req dto.RestartPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	updateUser, err := h.userService.RestartPassword(req.Email, req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch map[string]any
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	updateUser, err := h.userService.UpdateProfile(patch, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}

// SoftDelete deactivates the account via the generic update path; the row
// stays in place with status INACTIVE.
func (h *UserHandler) SoftDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	updateUser, err := h.userService.Update(map[string]any{"status": models.StatusInactive}, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}

// Drop removes the user row and its owned details for good.
func (h *UserHandler) Drop(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	roleID, err := paramID(c, "roleId")
	if err != nil {
		return respondError(c, err)
	}

	updateUser, err := h.userService.SetRoleToUser(userID, roleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}

func (h *UserHandler) UnsetRole(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	roleID, err := paramID(c, "roleId")
	if err != nil {
		return respondError(c, err)
	}

	updateUser, err := h.userService.UnsetRoleToUser(userID, roleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateUser": updateUser})
}
