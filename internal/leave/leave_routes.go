package leave

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", h.Apply)
		leaves.GET("/mine", h.GetMine)
		leaves.GET("", middleware.RoleMiddleware("ADMIN", "HR"), h.GetAll)
		leaves.PATCH("/:id/status", middleware.RoleMiddleware("ADMIN", "HR"), h.UpdateStatus)
	}
}
