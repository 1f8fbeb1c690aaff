package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/gokulkolipaka/graviti-ticketing-v2/pkg/resp"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
	"github.com/gokulkolipaka/graviti-ticketing-v2/utils"
)

type SettingsController struct {
	settingsService *services.SettingsService
	uploadDir       string
}

func NewSettingsController(service *services.SettingsService, uploadDir string) *SettingsController {
	return &SettingsController{settingsService: service, uploadDir: uploadDir}
}

// GET /api/settings (admin)
func (sc *SettingsController) Get(c *gin.Context) {
	settings, err := sc.settingsService.Get()
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, settings)
}

// PUT /api/settings (admin)
func (sc *SettingsController) Update(c *gin.Context) {
	var req services.UpdateSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	settings, err := sc.settingsService.Update(req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, settings)
}

// POST /api/settings/logo (admin, multipart field "logo")
func (sc *SettingsController) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		resp.BadRequest(c, "no file uploaded")
		return
	}

	filename, _, err := utils.SaveUpload(c, file, sc.uploadDir)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	logoPath := "/uploads/" + filename
	if err := sc.settingsService.UpdateLogo(logoPath); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Logo updated successfully", "path": logoPath})
}
