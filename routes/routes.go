package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gokulkolipaka/graviti-ticketing-v2/configs"
	"github.com/gokulkolipaka/graviti-ticketing-v2/controllers"
	"github.com/gokulkolipaka/graviti-ticketing-v2/entity"
	"github.com/gokulkolipaka/graviti-ticketing-v2/middlewares"
	"github.com/gokulkolipaka/graviti-ticketing-v2/repository"
	"github.com/gokulkolipaka/graviti-ticketing-v2/services"
	"github.com/gokulkolipaka/graviti-ticketing-v2/ws"
)

// RegisterRoutes ประกอบ repo → service → controller แล้วผูกทุก route
// ทุกอย่างส่งต่อกันตรง ๆ ไม่มี global นอกจาก DB handle ใน configs
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.EventHub, notifier *services.Notifier) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Services
	directory := services.NewDirectoryService(settingsRepo)
	authSvc := services.NewAuthService(userRepo, directory, cfg.JWTSecret, cfg.JWTTTL,
		cfg.AdminUsername, cfg.AdminPassword)
	ticketSvc := services.NewTicketService(db, ticketRepo, notifier)
	userSvc := services.NewUserService(userRepo)
	settingsSvc := services.NewSettingsService(settingsRepo)
	dashboardSvc := services.NewDashboardService(ticketRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	ticketCtrl := controllers.NewTicketController(ticketSvc, userRepo, cfg.UploadDir)
	userCtrl := controllers.NewUserController(userSvc)
	settingsCtrl := controllers.NewSettingsController(settingsSvc, cfg.UploadDir)
	dashboardCtrl := controllers.NewDashboardController(dashboardSvc)

	// Public
	api := r.Group("/api")
	api.POST("/login", authCtrl.Login)

	// admin เท่านั้น — /tickets/overdue ต้องมาก่อน /tickets/:id
	admin := api.Group("", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/tickets/overdue", ticketCtrl.Overdue)

		admin.PUT("/tickets/:id/assign", ticketCtrl.Assign)
		admin.PUT("/tickets/:id/severity", ticketCtrl.UpdateSeverity)

		admin.GET("/users", userCtrl.List)
		admin.POST("/users", userCtrl.Create)

		admin.GET("/settings", settingsCtrl.Get)
		admin.PUT("/settings", settingsCtrl.Update)
		admin.POST("/settings/logo", settingsCtrl.UploadLogo)
	}

	// ต้อง login
	auth := api.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		auth.POST("/change-admin-password", authCtrl.ChangeAdminPassword)

		auth.POST("/tickets", ticketCtrl.Create)
		auth.GET("/tickets", ticketCtrl.List)
		auth.GET("/tickets/:id", ticketCtrl.Detail)
		auth.PUT("/tickets/:id/status", ticketCtrl.UpdateStatus)
		auth.PUT("/tickets/:id/reopen", ticketCtrl.Reopen)
		auth.POST("/tickets/:id/comments", ticketCtrl.AddComment)

		auth.GET("/dashboard/stats", dashboardCtrl.Stats)
	}

	// Live sessions
	r.GET("/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
