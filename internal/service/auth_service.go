package service

import (
	"strings"

	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"
	"github.com/linoyezra1/learning-system/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Login resolves the username with the shared normalization rule,
// checks the password and issues a token. Bad username and bad password
// are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err == gorm.ErrRecordNotFound {
		return nil, "", util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Register creates an account. The username is stored trimmed, as the
// Excel import stores it, so the login normalization always matches.
func (s *AuthService) Register(username, password, fullName string, role model.UserRole) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, util.ErrInvalidCredentials
	}

	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Verify resolves a token back to the stored user row.
func (s *AuthService) Verify(tokenString string) (*model.User, error) {
	claims, err := util.ParseJWT(tokenString, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}
