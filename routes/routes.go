package routes

import (
	"safra-backend/configs"
	"safra-backend/controllers"
	"safra-backend/middlewares"
	"safra-backend/repository"
	"safra-backend/services"
	"safra-backend/utils"
	"safra-backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	recordRepo := repository.NewRecordRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cropRepo := repository.NewCropRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	recordSvc := services.NewRecordService(recordRepo, utils.DiskStore{Root: cfg.UploadRoot})
	draftSvc := services.NewDraftService(recordSvc)
	authSvc := services.NewAuthService(userRepo, services.NewTableVerifier(userRepo), cfg.JWTSecret, cfg.JWTTTL)

	// Live feed for the review console
	feed := ws.NewRecordFeed()
	go feed.Run()
	draftSvc.Feed = feed

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	draftCtrl := controllers.NewDraftController(draftSvc)
	recordCtrl := controllers.NewRecordController(recordSvc, customerRepo, cropRepo)
	adminCtrl := controllers.NewAdminController(recordSvc, customerRepo, cropRepo)
	lookupCtrl := controllers.NewLookupController(customerRepo, cropRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Form (any logged-in user)
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.GET("/bootstrap", recordCtrl.Bootstrap)
		u.GET("/customers", lookupCtrl.ListCustomers)
		u.GET("/crops", lookupCtrl.ListCrops)
		u.GET("/records", recordCtrl.List)

		u.POST("/drafts", draftCtrl.Create)
		u.GET("/drafts/:id", draftCtrl.Get)
		u.PATCH("/drafts/:id/fields", draftCtrl.SetField)
		u.POST("/drafts/:id/visits", draftCtrl.AddVisit)
		u.POST("/drafts/:id/location", draftCtrl.SetLocation)
		u.POST("/drafts/:id/submit", draftCtrl.Submit)
	}

	// Review console (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/records", adminCtrl.ListRecords)
		admin.GET("/records/export", adminCtrl.Export)
		admin.PATCH("/records/:id/approve", adminCtrl.Approve)
		admin.PATCH("/records/:id/reject", adminCtrl.Reject)
	}

	// WS: live submissions for the dashboard
	r.GET("/ws/records", middlewares.WSAuthMiddleware(cfg.JWTSecret), feed.HandleWebSocket)
}
