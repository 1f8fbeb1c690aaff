package repository

import (
	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// settings มีแถวเดียว (id = 1)
func (r *SettingsRepository) Get() (*entity.Settings, error) {
	var s entity.Settings
	if err := r.DB.First(&s, 1).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(updates map[string]any) error {
	return r.DB.Model(&entity.Settings{}).Where("id = ?", 1).Updates(updates).Error
}

func (r *SettingsRepository) UpdateLogo(path string) error {
	return r.DB.Model(&entity.Settings{}).Where("id = ?", 1).
		Update("logo_path", path).Error
}
