package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uniportal/internal/authz"
	"uniportal/internal/handlers"
	"uniportal/internal/middleware"
	"uniportal/internal/token"
)

func SetupRoutes(
	r *gin.Engine,
	codec *token.Codec,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	programHandler *handlers.ProgramHandler,
	courseHandler *handlers.CourseHandler,
	enrollmentHandler *handlers.EnrollmentHandler,
	paymentHandler *handlers.PaymentHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) *gin.Engine {

	// the filter must run before anything under a protected prefix
	r.Use(middleware.AccessFilter(codec))

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "sign in required", "next": c.Query("next")})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/mfa/verify", authHandler.VerifyMfa)
		auth.POST("/mfa/resend", authHandler.ResendMfa)
		auth.POST("/logout", authHandler.Logout)
	}

	// ---- role sections (AccessFilter redirects unauthorized requests)
	admin := r.Group("/admin")
	{
		admin.GET("", analyticsHandler.GetSummary)
		admin.GET("/enrollments", analyticsHandler.FilterEnrollments)
	}

	instructor := r.Group("/instructor")
	{
		instructor.GET("/courses", courseHandler.ListMine)
		instructor.GET("/courses/:id/enrollments", enrollmentHandler.ListByCourse)
	}

	student := r.Group("/student")
	{
		student.GET("/enrollments", enrollmentHandler.ListMine)
		student.POST("/enrollments", enrollmentHandler.Enroll)
	}

	// ---- JSON API (401/403 instead of redirects)
	api := r.Group("/api", middleware.SessionRequired(codec))
	{
		api.GET("/programs", programHandler.List)
		api.GET("/programs/:id", programHandler.GetByID)
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.GetByID)
		api.GET("/enrollments/:id/payments", paymentHandler.ListByEnrollment)

		staff := api.Group("", middleware.RequireRole(authz.RoleInstructor, authz.RoleAdmin))
		{
			staff.POST("/enrollments/:id/status", enrollmentHandler.UpdateStatus)
			staff.POST("/payments", paymentHandler.Record)
		}

		adminAPI := api.Group("/admin", middleware.RequireRole(authz.RoleAdmin))
		{
			adminAPI.POST("/users", userHandler.Create)
			adminAPI.GET("/users", userHandler.List)
			adminAPI.GET("/users/:id", userHandler.GetByID)
			adminAPI.PUT("/users/:id", userHandler.Update)
			adminAPI.DELETE("/users/:id", userHandler.Delete)
			adminAPI.POST("/users/:id/deactivate", userHandler.Deactivate)
			adminAPI.GET("/users/count/:role", userHandler.CountByRole)

			adminAPI.POST("/programs", programHandler.Create)
			adminAPI.PUT("/programs/:id", programHandler.Update)
			adminAPI.DELETE("/programs/:id", programHandler.Delete)

			adminAPI.POST("/courses", courseHandler.Create)
			adminAPI.PUT("/courses/:id", courseHandler.Update)
			adminAPI.DELETE("/courses/:id", courseHandler.Delete)

			adminAPI.POST("/payments/:id/refund", paymentHandler.Refund)
		}
	}

	return r
}
