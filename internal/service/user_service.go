package service

import (
	"strings"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) List() ([]model.User, error) {
	return s.UserRepo.List()
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) Create(username, password, fullName string, role model.UserRole) (*model.User, error) {
	username = strings.TrimSpace(username)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.Student
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
