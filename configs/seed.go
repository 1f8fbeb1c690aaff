package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

// สร้าง admin ครั้งแรก
func SeedAdmin(cfg *Config) error {
	db := DB()

	var count int64
	db.Model(&entity.User{}).Where("username = ?", cfg.AdminUsername).Count(&count)
	if count > 0 {
		log.Println("ℹ️ admin already exists:", cfg.AdminUsername)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username:   cfg.AdminUsername,
		Email:      cfg.AdminEmail,
		Password:   string(hash),
		Role:       entity.RoleAdmin,
		Department: "IT",
	}
	return db.Create(&admin).Error
}

// Seed แถว settings เดียว (id = 1)
func SeedSettings() error {
	db := DB()

	if err := db.FirstOrCreate(&entity.Settings{}, entity.Settings{ID: 1}).Error; err != nil {
		return err
	}
	log.Println("✅ Settings row ready")
	return nil
}
