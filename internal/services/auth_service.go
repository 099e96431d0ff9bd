package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/matiasmngz/users-api/internal/apperr"
	"github.com/matiasmngz/users-api/internal/config"
	"github.com/matiasmngz/users-api/internal/dto"
	"github.com/matiasmngz/users-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db    *gorm.DB
	users *UserService
	cfg   *config.Config
}

func NewAuthService(db *gorm.DB, users *UserService, cfg *config.Config) *AuthService {
	return &AuthService{db: db, users: users, cfg: cfg}
}

// Signup creates the account through the user lifecycle service; errors
// pass through unchanged.
func (s *AuthService) Signup(req *dto.SignupRequest) (*models.User, error) {
	return s.users.Create(&dto.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
}

// Signin verifies the credential and issues a signed token. The account is
// resolved by email when one is supplied, by username otherwise. A correct
// password on an INACTIVE account reactivates it before the token is issued.
func (s *AuthService) Signin(req *dto.SigninRequest) (*dto.SigninResponse, error) {
	query := s.db.Preload("Details").Preload("Roles")
	switch {
	case req.Email != "":
		query = query.Where("email = ?", req.Email)
	case req.Username != "":
		query = query.Where("username = ?", req.Username)
	default:
		return nil, apperr.Validation("username or email is required")
	}

	var user models.User
	err := query.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if user.Status == models.StatusInactive {
		user.Status = models.StatusActive
		user.UpdatedAt = time.Now()
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to reactivate user: %w", err)
		}
	}

	claims := dto.Claims{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
		Details: dto.ClaimDetails{
			ID:       user.Details.ID,
			Name:     user.Details.Name,
			Lastname: user.Details.Lastname,
		},
	}

	token, err := s.sign(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.SigninResponse{Token: token, User: claims}, nil
}

func (s *AuthService) sign(claims dto.Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"username": claims.Username,
		"email":    claims.Email,
		"roles":    claims.Roles,
		"details": map[string]any{
			"id":       claims.Details.ID,
			"name":     claims.Details.Name,
			"lastname": claims.Details.Lastname,
		},
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWTExpiry).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
