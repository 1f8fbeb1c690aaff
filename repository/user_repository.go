package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// หาผู้ใช้จาก username
func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// นับจำนวน user ที่มี username ซ้ำ
func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// สร้าง user ใหม่
func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

// รายชื่อผู้ใช้ทั้งหมด (ไม่เอา password ไปด้วย)
type UserSummary struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *UserRepository) List() ([]UserSummary, error) {
	var out []UserSummary
	err := r.DB.Model(&entity.User{}).
		Select("id, username, email, role, department, created_at").
		Order("id ASC").
		Scan(&out).Error
	return out, err
}

// เปลี่ยนรหัสผ่าน (hash แล้ว)
func (r *UserRepository) UpdatePassword(username, hashed string) error {
	return r.DB.Model(&entity.User{}).Where("username = ?", username).
		Update("password", hashed).Error
}
