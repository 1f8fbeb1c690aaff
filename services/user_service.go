package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
)

// UserService = งานจัดการผู้ใช้ฝั่ง admin
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{userRepo: repo}
}

func (s *UserService) List() ([]repository.UserSummary, error) {
	return s.userRepo.List()
}

// Create เพิ่มผู้ใช้ใหม่ (admin เท่านั้น ผ่าน route)
func (s *UserService) Create(username, email, password, role, department string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	// ตรวจซ้ำ username
	count, err := s.userRepo.CountByUsername(username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	if role != entity.RoleAdmin && role != entity.RoleUser {
		role = entity.RoleUser
	}

	// hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:   username,
		Email:      strings.TrimSpace(email),
		Password:   string(hashed),
		Role:       role,
		Department: strings.TrimSpace(department),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
