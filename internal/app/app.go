package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"uniportal/internal/config"
	"uniportal/internal/handlers"
	"uniportal/internal/pdf"
	"uniportal/internal/repositories"
	"uniportal/internal/routes"
	"uniportal/internal/services"
	"uniportal/internal/token"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "uniportal/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.Secret == "" {
		log.Fatal("auth.secret must be set in config.yaml")
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	// bounded pool; saturated acquisitions block instead of failing fast
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	codec := token.NewCodec(cfg.Auth.Secret)

	otpService := services.NewOTPService(otpRepo, userRepo, emailService)
	loginService := services.NewLoginService(userRepo, authService, otpService, codec)
	userService := services.NewUserService(userRepo, emailService, authService)
	programService := services.NewProgramService(programRepo)
	courseService := services.NewCourseService(courseRepo, programRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo, emailService)

	receiptGen := pdf.NewGenerator(cfg.Files.RootDir)
	paymentService := services.NewPaymentService(paymentRepo, enrollmentRepo, receiptGen)

	analyticsService := services.NewAnalyticsService(userRepo, programRepo, courseRepo, enrollmentRepo, paymentRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(loginService, codec)
	userHandler := handlers.NewUserHandler(userService)
	programHandler := handlers.NewProgramHandler(programService)
	courseHandler := handlers.NewCourseHandler(courseService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		codec,
		authHandler,
		userHandler,
		programHandler,
		courseHandler,
		enrollmentHandler,
		paymentHandler,
		analyticsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
