package services

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
	"github.com/gokulkolipaka/graviti-ticketing-v2/utils"
)

// AuthService จัดการ login (LDAP ก่อน แล้วค่อย local) + ออก JWT
type AuthService struct {
	userRepo  *repository.UserRepository
	directory *DirectoryService
	jwtSecret string
	jwtTTL    time.Duration

	// ไว้เช็ค first login ของ admin ที่ seed มา
	adminUsername   string
	adminDefaultPwd string
}

func NewAuthService(repo *repository.UserRepository, directory *DirectoryService,
	secret string, ttl time.Duration, adminUsername, adminDefaultPwd string) *AuthService {
	return &AuthService{
		userRepo:        repo,
		directory:       directory,
		jwtSecret:       secret,
		jwtTTL:          ttl,
		adminUsername:   adminUsername,
		adminDefaultPwd: adminDefaultPwd,
	}
}

// LoginResult = ผลการ login ที่ controller เอาไปตอบ client
type LoginResult struct {
	Token      string       `json:"token"`
	User       *entity.User `json:"user"`
	FirstLogin bool         `json:"firstLogin,omitempty"`
}

// Login ลอง LDAP ก่อน (ถ้าตั้งค่าไว้) — LDAP พังยังไงก็ fallback มา local
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if user, err := s.directory.Authenticate(username, password); err == nil {
		return s.loginFromDirectory(user)
	} else if !errors.Is(err, ErrDirectoryDisabled) {
		log.Println("LDAP authentication failed, trying local auth")
	}

	return s.loginLocal(username, password)
}

// ผู้ใช้จาก LDAP → สร้าง/อัปเดต record ใน local DB แล้วออก token role=user
func (s *AuthService) loginFromDirectory(du *DirectoryUser) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(du.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &entity.User{
			Username:   du.Username,
			Email:      du.Email,
			Role:       entity.RoleUser,
			Department: du.Department,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) loginLocal(username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	// เทียบรหัสผ่าน
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// ออก token
	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}

	// admin ที่ seed มายังใช้รหัสเดิม → flag ให้ FE บังคับเปลี่ยน
	firstLogin := user.Username == s.adminUsername && password == s.adminDefaultPwd

	return &LoginResult{Token: token, User: user, FirstLogin: firstLogin}, nil
}

// ChangeAdminPassword เปลี่ยนรหัสของ admin ตั้งต้น — ทำได้เฉพาะ admin คนนั้นเอง
func (s *AuthService) ChangeAdminPassword(caller Identity, newPassword string) error {
	if caller.Username != s.adminUsername {
		return ErrForbidden
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(s.adminUsername, string(hashed))
}
