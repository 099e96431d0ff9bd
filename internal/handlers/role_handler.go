package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/matiasmngz/users-api/internal/dto"
	"github.com/matiasmngz/users-api/internal/models"
	"github.com/matiasmngz/users-api/internal/services"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	role, err := h.roleService.Get(id, models.StatusActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"role": role})
}

func (h *RoleHandler) GetByIDAndStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	role, err := h.roleService.Get(id, c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"role": role})
}

func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.GetAll(models.StatusActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"roles": roles, "total": len(roles)})
}

func (h *RoleHandler) ListByStatus(c *fiber.Ctx) error {
	roles, err := h.roleService.GetAll(c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"roles": roles, "total": len(roles)})
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	newRole, err := h.roleService.Create(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"newRole": newRole})
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
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

	updateRole, err := h.roleService.Update(patch, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateRole": updateRole})
}

// SoftDelete flips the role to INACTIVE through the generic update path.
func (h *RoleHandler) SoftDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	updateRole, err := h.roleService.Update(map[string]any{"status": models.StatusInactive}, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updateRole": updateRole})
}

func (h *RoleHandler) Drop(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.roleService.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
