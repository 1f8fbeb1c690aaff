package configs

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	// สร้างโฟลเดอร์ data ก่อนถ้ายังไม่มี
	if dir := filepath.Dir(source); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {

	// Migrate the schema
	db.AutoMigrate(
		&entity.User{},
		&entity.Ticket{}, &entity.Comment{}, &entity.Attachment{},
		&entity.Settings{},
	)
}
