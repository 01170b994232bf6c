package services

import (
	"errors"
	"strings"

	"collabhub_backend/internal/auth"
	"collabhub_backend/internal/config"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"
	"collabhub_backend/internal/repositories"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/validator"
	"collabhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, rc auth.RequestContext) (*dto.MeResponse, error)
	SeedAdmin(db *gorm.DB, cfg config.AdminConfig) (bool, error)
}

type authService struct {
	userRepo       repositories.UserRepository
	brandRepo      repositories.BrandProfileRepository
	influencerRepo repositories.InfluencerProfileRepository
	tokens         *auth.TokenManager
	validator      *validator.Validator
}

func NewAuthService(
	userRepo repositories.UserRepository,
	brandRepo repositories.BrandProfileRepository,
	influencerRepo repositories.InfluencerProfileRepository,
	tokens *auth.TokenManager,
	v *validator.Validator,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		brandRepo:      brandRepo,
		influencerRepo: influencerRepo,
		tokens:         tokens,
		validator:      v,
	}
}

// Register - регистрация бренда или инфлюенсера. ADMIN через API не создается.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.FieldError("password", err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         models.UserRole(req.Role),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctxOf(db), "user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := s.validator.Check(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me возвращает пользователя и профиль, соответствующий его роли (если создан)
func (s *authService) Me(db *gorm.DB, rc auth.RequestContext) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, rc.PrincipalID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	response := &dto.MeResponse{User: user}
	switch user.Role {
	case models.UserRoleBrand:
		profile, err := s.brandRepo.FindByUserID(db, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrBrandProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		response.BrandProfile = profile
	case models.UserRoleInfluencer:
		profile, err := s.influencerRepo.FindByUserID(db, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrInfluencerProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		response.InfluencerProfile = profile
	}
	return response, nil
}

// SeedAdmin создает первого администратора, если в базе нет ни одного.
// Возвращает true, если пользователь был создан.
func (s *authService) SeedAdmin(db *gorm.DB, cfg config.AdminConfig) (bool, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return false, nil
	}

	count, err := s.userRepo.CountByRole(db, models.UserRoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := auth.ValidatePassword(cfg.Password); err != nil {
		return false, err
	}
	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		Email:        normalizeEmail(cfg.Email),
		PasswordHash: hash,
		Name:         cfg.Name,
		Role:         models.UserRoleAdmin,
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *authService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{AccessToken: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
