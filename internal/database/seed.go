package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/matiasmngz/users-api/internal/config"
	"github.com/matiasmngz/users-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedRoles ensures the built-in roles exist. Signup depends on GENERAL
// being present before the first request is served.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleGeneral, Description: "default role for new accounts", Status: models.StatusActive},
		{Name: models.RoleAdministrador, Description: "full account management access", Status: models.StatusActive},
	}

	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up role %s: %w", role.Name, err)
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
		slog.Info("role seeded", "role", role.Name)
	}
	return nil
}

// SeedAdmin bootstraps one ADMINISTRADOR account when the SEED_ADMIN_*
// variables are set and no user with that username exists yet.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SeedAdminUsername == "" || cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.SeedAdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	var admin models.Role
	if err := db.Where("name = ?", models.RoleAdministrador).First(&admin).Error; err != nil {
		return fmt.Errorf("failed to load %s role: %w", models.RoleAdministrador, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	user := models.User{
		Username: cfg.SeedAdminUsername,
		Email:    cfg.SeedAdminEmail,
		Password: string(hash),
		Status:   models.StatusActive,
		Roles:    []models.Role{admin},
	}
	// The empty details row must be written explicitly; a zero-value
	// belongs-to association is skipped by the ORM.
	err = db.Transaction(func(tx *gorm.DB) error {
		details := models.UserDetails{}
		if err := tx.Create(&details).Error; err != nil {
			return fmt.Errorf("failed to create details: %w", err)
		}
		user.DetailsID = details.ID
		user.Details = details
		return tx.Create(&user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	slog.Info("admin user seeded", "username", user.Username)
	return nil
}
