package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wedplan/internal/budget"
	"wedplan/internal/chat"
	"wedplan/internal/config"
	"wedplan/internal/handler"
	"wedplan/internal/middleware"
	"wedplan/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(db, cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	aggregator := budget.NewAggregator(db)
	hub := chat.NewHub(messageRepo, userRepo, cfg.JWTSecret)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, cfg.TokenTTLHours)
	boardHandler := handler.NewBoardHandler(boardRepo, userRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, boardRepo, vendorRepo, aggregator)
	checklistHandler := handler.NewChecklistHandler(checklistRepo, taskRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, taskRepo)
	vendorHandler := handler.NewVendorHandler(vendorRepo, boardRepo, taskRepo, aggregator)
	guestHandler := handler.NewGuestHandler(guestRepo)
	messageHandler := handler.NewMessageHandler(messageRepo, userRepo, hub)

	// Public routes
	r.POST("/api/user/register", userHandler.Register)
	r.POST("/api/user/login", userHandler.Login)
	r.POST("/api/user/forgot-password", userHandler.ForgotPassword)
	r.GET("/ws", hub.HandleWS)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require the session cookie
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		authorized.GET("/user/logout", userHandler.Logout)
		authorized.GET("/user/profile", userHandler.Profile)
		authorized.PUT("/user/update", userHandler.UpdateProfile)

		// Board routes
		authorized.POST("/board", boardHandler.Create)
		authorized.GET("/board", boardHandler.GetAll)
		authorized.GET("/board/:id", boardHandler.GetByID)
		authorized.PUT("/board/:id", boardHandler.Update)
		authorized.DELETE("/board/:id", boardHandler.Delete)
		authorized.POST("/board/:id/members", boardHandler.AddMember)
		authorized.DELETE("/board/:id/members/:memberId", boardHandler.RemoveMember)

		// Task routes
		authorized.POST("/task", taskHandler.Create)
		authorized.GET("/task/board/:boardId", taskHandler.GetByBoardID)
		authorized.PUT("/task/:id", taskHandler.Update)
		authorized.DELETE("/task/:id", taskHandler.Delete)

		// Checklist routes
		authorized.POST("/checklist/:taskId", checklistHandler.Add)
		authorized.GET("/checklist/:taskId", checklistHandler.GetAll)
		authorized.PUT("/checklist/:taskId/:itemId", checklistHandler.Edit)
		authorized.DELETE("/checklist/:taskId/:itemId", checklistHandler.Delete)
		authorized.PATCH("/checklist/:taskId/:itemId/toggle", checklistHandler.Toggle)

		// Comment routes
		authorized.POST("/comment/:taskId", commentHandler.Add)
		authorized.GET("/comment/:taskId", commentHandler.GetAll)
		authorized.PUT("/comment/:taskId/:commentId", commentHandler.Edit)
		authorized.DELETE("/comment/:taskId/:commentId", commentHandler.Delete)

		// Vendor routes
		authorized.POST("/vendor", vendorHandler.Create)
		authorized.GET("/vendor/board/:boardId", vendorHandler.GetByBoardID)
		authorized.PUT("/vendor/:id", vendorHandler.Update)
		authorized.DELETE("/vendor/:id", vendorHandler.Delete)

		// Guest routes
		authorized.POST("/guest", guestHandler.Create)
		authorized.GET("/guest", guestHandler.GetAll)
		authorized.PUT("/guest/:id", guestHandler.Update)
		authorized.DELETE("/guest/:id", guestHandler.Delete)

		// Message routes
		authorized.GET("/message", messageHandler.GetAll)
		authorized.POST("/message", messageHandler.Post)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsPath, cfg.DBName, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
