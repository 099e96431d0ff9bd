package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/matiasmngz/users-api/internal/apperr"
	"github.com/matiasmngz/users-api/internal/config"
	"github.com/matiasmngz/users-api/internal/dto"
	"github.com/matiasmngz/users-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db         *gorm.DB
	bcryptCost int
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, bcryptCost: cfg.BcryptCost}
}

// Get returns the user matching id and status jointly, with details and
// roles materialized.
func (s *UserService) Get(id uint, status string) (*models.User, error) {
	if id == 0 || status == "" {
		return nil, apperr.Validation("all params must be sent")
	}
	if !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be a valid status")
	}

	var user models.User
	err := s.db.Preload("Details").Preload("Roles").
		Where("status = ?", status).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("not found user %s", status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// GetAll returns every user in the given status, in insertion order.
func (s *UserService) GetAll(status string) ([]models.User, error) {
	if status == "" {
		return nil, apperr.Validation("all params must be sent")
	}
	if !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be a valid status")
	}

	var users []models.User
	err := s.db.Preload("Details").Preload("Roles").
		Where("status = ?", status).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Create persists a new ACTIVE account with an empty details record and the
// GENERAL role as its sole initial role. A single disjunctive lookup blocks
// creation when either the username or the email is already taken; the
// unique indexes on both columns close the remaining race window.
func (s *UserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}

	var existing models.User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("username or email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	var general models.Role
	if err := s.db.Where("name = ?", models.RoleGeneral).First(&general).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s role: %w", models.RoleGeneral, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Status:   models.StatusActive,
		Roles:    []models.Role{general},
	}
	// The empty details row is written explicitly: a zero-value belongs-to
	// association is skipped by the ORM, which would leave the account
	// without its owned record.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		details := models.UserDetails{}
		if err := tx.Create(&details).Error; err != nil {
			return fmt.Errorf("failed to create details: %w", err)
		}
		user.DetailsID = details.ID
		user.Details = details
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial patch to a user. Only username and status are
// honored; other keys are silently discarded. Soft-delete goes through here
// as a patch with status=INACTIVE.
func (s *UserService) Update(patch map[string]any, id uint) (*models.User, error) {
	patch = filterFields(patch, "username", "status")
	if id == 0 || len(patch) == 0 {
		return nil, apperr.Validation("all params must be sent")
	}

	status := stringField(patch, "status")
	if status != "" && !models.ValidStatus(status) {
		return nil, apperr.Validation("status must be a valid status")
	}

	var user models.User
	err := s.db.Preload("Details").Preload("Roles").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	setIfPresent(&user.Username, stringField(patch, "username"))
	setIfPresent(&user.Status, status)
	user.UpdatedAt = time.Now()

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// UpdateEmail changes the email of an ACTIVE user. Setting an account's own
// current email back is not a conflict.
func (s *UserService) UpdateEmail(email string, id uint) (*models.User, error) {
	if id == 0 || email == "" {
		return nil, apperr.Validation("all params must be sent")
	}

	var user models.User
	err := s.db.Preload("Details").Preload("Roles").
		Where("status = ?", models.StatusActive).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var owner models.User
	err = s.db.Where("email = ? AND status = ?", email, models.StatusActive).
		First(&owner).Error
	if err == nil && owner.ID != user.ID {
		return nil, apperr.Conflict("user with %s already exists", email)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email owner: %w", err)
	}

	user.Email = email
	user.UpdatedAt = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}
	return &user, nil
}

// RestartPassword rehashes the password of the account owning the email,
// regardless of status, and reactivates the account. A password reset is a
// reactivation trigger, same as a successful signin.
func (s *UserService) RestartPassword(email, newPassword string) (*models.User, error) {
	if email == "" || newPassword == "" {
		return nil, apperr.Validation("all params must be sent")
	}

	var user models.User
	err := s.db.Preload("Details").Preload("Roles").
		Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user with %s not exists", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	user.Status = models.StatusActive
	user.UpdatedAt = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to restart password: %w", err)
	}
	return &user, nil
}

// UpdateProfile patches the owned details record. Only name and lastname are
// honored.
func (s *UserService) UpdateProfile(patch map[string]any, id uint) (*models.User, error) {
	patch = filterFields(patch, "name", "lastname")
	if id == 0 || len(patch) == 0 {
		return nil, apperr.Validation("all params must be sent correctly")
	}

	var user models.User
	err := s.db.Preload("Details").Preload("Roles").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var details models.UserDetails
	err = s.db.First(&details, user.DetailsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("details not exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load details: %w", err)
	}
	if details.ID != user.Details.ID {
		return nil, apperr.NotFound("details not exists")
	}

	setIfPresent(&details.Name, stringField(patch, "name"))
	setIfPresent(&details.Lastname, stringField(patch, "lastname"))

	// Save does not touch fields of an already-persisted association, so the
	// details row is written on its own.
	if err := s.db.Save(&details).Error; err != nil {
		return nil, fmt.Errorf("failed to update details: %w", err)
	}

	user.Details = details
	user.UpdatedAt = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// Delete hard-deletes the user, its role links and its owned details row.
func (s *UserService) Delete(id uint) error {
	if id == 0 {
		return apperr.Validation("all params must be sent")
	}

	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user with id=%d not exists", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
			return fmt.Errorf("failed to clear roles: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if err := tx.Delete(&models.UserDetails{}, user.DetailsID).Error; err != nil {
			return fmt.Errorf("failed to delete details: %w", err)
		}
		return nil
	})
}

// SetRoleToUser appends a role to an ACTIVE user's role set. Membership is
// keyed by role name; a second role row sharing the name counts as already
// held.
func (s *UserService) SetRoleToUser(userID, roleID uint) (*models.User, error) {
	user, role, err := s.activeUserAndRole(userID, roleID)
	if err != nil {
		return nil, err
	}

	if user.HasRole(role.Name) {
		return nil, apperr.Conflict("user has %s role", role.Name)
	}

	if err := s.db.Model(user).Association("Roles").Append(role); err != nil {
		return nil, fmt.Errorf("failed to attach role: %w", err)
	}
	user.UpdatedAt = time.Now()
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// UnsetRoleToUser removes every role matching the target role's name from
// an ACTIVE user's role set.
func (s *UserService) UnsetRoleToUser(userID, roleID uint) (*models.User, error) {
	user, role, err := s.activeUserAndRole(userID, roleID)
	if err != nil {
		return nil, err
	}

	if !user.HasRole(role.Name) {
		return nil, apperr.Conflict("user not has %s role", role.Name)
	}

	var matched []models.Role
	var kept []models.Role
	for _, r := range user.Roles {
		if r.Name == role.Name {
			matched = append(matched, r)
		} else {
			kept = append(kept, r)
		}
	}

	for i := range matched {
		if err := s.db.Model(user).Association("Roles").Delete(&matched[i]); err != nil {
			return nil, fmt.Errorf("failed to detach role: %w", err)
		}
	}
	user.Roles = kept
	user.UpdatedAt = time.Now()
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

func (s *UserService) activeUserAndRole(userID, roleID uint) (*models.User, *models.Role, error) {
	var user models.User
	err := s.db.Preload("Details").Preload("Roles").
		Where("status = ?", models.StatusActive).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.NotFound("user not exists")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	var role models.Role
	err = s.db.Where("status = ?", models.StatusActive).First(&role, roleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.NotFound("role not exists")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load role: %w", err)
	}

	return &user, &role, nil
}
