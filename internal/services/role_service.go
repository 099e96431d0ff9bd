package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/matiasmngz/users-api/internal/apperr"
	"github.com/matiasmngz/users-api/internal/dto"
	"github.com/matiasmngz/users-api/internal/models"
	"gorm.io/gorm"
)

type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// Get returns the role matching id and status jointly.
func (s *RoleService) Get(id uint, status string) (*models.Role, error) {
	if id == 0 || status == "" {
		return nil, apperr.Validation("all params must be sent")
	}
	if !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be a valid status")
	}

	var role models.Role
	err := s.db.Where("status = ?", status).First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("not found role %s with id=%d", status, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load role: %w", err)
	}
	return &role, nil
}

func (s *RoleService) GetAll(status string) ([]models.Role, error) {
	if status == "" {
		return nil, apperr.Validation("all params must be sent")
	}
	if !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be a valid status")
	}

	var roles []models.Role
	if err := s.db.Where("status = ?", status).Order("id").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Create persists a new ACTIVE role. Name uniqueness is checked against the
// existing rows as-is, without case folding.
func (s *RoleService) Create(req *dto.CreateRoleRequest) (*models.Role, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	var existing models.Role
	err := s.db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("name role already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing role: %w", err)
	}

	role := models.Role{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.StatusActive,
	}
	if err := s.db.Create(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &role, nil
}

// Update applies a partial patch to a role. Whitelist: name, description,
// status. Soft-delete goes through here as a patch with status=INACTIVE.
func (s *RoleService) Update(patch map[string]any, id uint) (*models.Role, error) {
	patch = filterFields(patch, "name", "description", "status")
	if id == 0 || len(patch) == 0 {
		return nil, apperr.Validation("all params must be sent")
	}

	status := stringField(patch, "status")
	if status != "" && !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be a valid status")
	}

	var role models.Role
	err := s.db.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("role with id=%d not exists", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load role: %w", err)
	}

	setIfPresent(&role.Name, stringField(patch, "name"))
	setIfPresent(&role.Description, stringField(patch, "description"))
	setIfPresent(&role.Status, status)
	role.UpdatedAt = time.Now()

	if err := s.db.Save(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &role, nil
}

// Delete hard-deletes the role row.
func (s *RoleService) Delete(id uint) error {
	if id == 0 {
		return apperr.Validation("all params must be sent")
	}

	var role models.Role
	err := s.db.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("role with id=%d not exists", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load role: %w", err)
	}

	if err := s.db.Delete(&role).Error; err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}
