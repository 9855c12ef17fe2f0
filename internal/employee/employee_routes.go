package employee

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/options", h.GetOptions)
		employees.GET("", middleware.RoleMiddleware("ADMIN", "HR"), h.GetAll)
		employees.GET("/:id", middleware.RoleMiddleware("ADMIN", "HR"), h.GetByID)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("ADMIN", "HR"),
			h.Create,
		)
		employees.PUT("/:id", middleware.RoleMiddleware("ADMIN", "HR"), h.Update)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("ADMIN"),
			h.Delete,
		)
	}
}
