package dto

import "collabhub_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Role     string `json:"role" validate:"required,is-registrable-role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

type MeResponse struct {
	User              *models.User              `json:"user"`
	BrandProfile      *models.BrandProfile      `json:"brandProfile,omitempty"`
	InfluencerProfile *models.InfluencerProfile `json:"influencerProfile,omitempty"`
}
