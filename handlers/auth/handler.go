package auth

import (
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/model"
	authutil "github.com/AnuragKannojiya/alumni-connect-api/utils/auth"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	validator            *validation.Validator
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		validator:            validation.NewValidator(),
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
	}
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ProfileImage string    `json:"profile_image_url,omitempty"`
	Role         string    `json:"role"`
	CollegeID    *uint     `json:"college_id,omitempty"`
	Department   string    `json:"department,omitempty"`
	Batch        string    `json:"batch,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Location     string    `json:"location,omitempty"`
	IsOnboarded  bool      `json:"is_onboarded"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfileImage: user.ProfileImage,
		Role:         user.Role,
		CollegeID:    user.CollegeID,
		Department:   user.Department,
		Batch:        user.Batch,
		Bio:          user.Bio,
		Location:     user.Location,
		IsOnboarded:  user.IsOnboarded,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
