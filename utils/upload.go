package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// SaveUpload เซฟไฟล์ที่ upload ลง dir แล้วคืน (ชื่อไฟล์ที่เก็บจริง, path)
// ตั้งชื่อด้วย timestamp กันชนกัน
func SaveUpload(c *gin.Context, file *multipart.FileHeader, dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	path := filepath.Join(dir, filename)

	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", "", err
	}
	return filename, path, nil
}
