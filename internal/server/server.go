package server

import (
	"net/http"

	"gradebook/internal/config"
	"gradebook/internal/handler"
	"gradebook/internal/middleware"
	"gradebook/internal/models"
	"gradebook/internal/repository"
	"gradebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	handler.SetupValidator()

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}))

	s := &Server{
		router: router,
		db:     db,
		logger: logger,
	}

	userRepo := repository.NewUserRepository(db, logger)
	studentRepo := repository.NewStudentRepository(db, logger)
	subjectRepo := repository.NewSubjectRepository(db, logger)
	gradeRepo := repository.NewGradeRepository(db, logger)
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, logger)

	s.setupRoutes(authService, userRepo, studentRepo, subjectRepo, gradeRepo)

	return s
}

// setupRoutes declares every route together with the checks it
// requires. Guards live here, not inside handlers, so no route can
// forget one.
func (s *Server) setupRoutes(
	authService service.AuthService,
	userRepo repository.UserRepository,
	studentRepo repository.StudentRepository,
	subjectRepo repository.SubjectRepository,
	gradeRepo repository.GradeRepository,
) {
	authHandler := handler.NewAuthHandler(authService, s.logger)
	studentHandler := handler.NewStudentHandler(studentRepo, s.logger)
	subjectHandler := handler.NewSubjectHandler(subjectRepo, s.logger)
	gradeHandler := handler.NewGradeHandler(gradeRepo, s.logger)
	userHandler := handler.NewUserHandler(userRepo, authService, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public routes
	s.router.POST("/auth/login", authHandler.Login)

	// Every resource route, reads included, requires authentication.
	authRequired := s.router.Group("")
	authRequired.Use(middleware.RequireAuth(authService, s.logger))

	students := authRequired.Group("/students")
	{
		students.GET("", studentHandler.List)
		students.GET("/:id", studentHandler.Get)
		students.POST("", studentHandler.Create)
		students.PUT("/:id", studentHandler.Update)
		students.DELETE("/:id", studentHandler.Delete)
	}

	subjects := authRequired.Group("/subjects")
	{
		subjects.GET("", subjectHandler.List)
		subjects.GET("/:id", subjectHandler.Get)
		subjects.POST("", subjectHandler.Create)
		subjects.PUT("/:id", subjectHandler.Update)
		subjects.DELETE("/:id", subjectHandler.Delete)
	}

	grades := authRequired.Group("/grades")
	{
		grades.GET("", gradeHandler.List)
		grades.GET("/:id", gradeHandler.Get)
		grades.POST("", gradeHandler.Create)
		grades.PUT("/:id", gradeHandler.Update)
		grades.DELETE("/:id", gradeHandler.Delete)
	}

	users := authRequired.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)

		// Mutations and role management need the admin role on top of
		// authentication.
		admin := users.Group("", middleware.RequireRole(userRepo, models.RoleAdmin, s.logger))
		{
			admin.POST("", userHandler.Create)
			admin.PUT("/:id", userHandler.Update)
			admin.DELETE("/:id", userHandler.Delete)
			admin.GET("/:id/roles", userHandler.ListRoles)
			admin.POST("/:id/roles", userHandler.AssignRole)
			admin.DELETE("/:id/roles/:role", userHandler.RevokeRole)
		}
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
