package attendance

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in", h.CheckIn)
		attendances.POST("/check-out", h.CheckOut)
		attendances.POST("/break", h.RecordBreak)
		attendances.GET("/today", h.GetTodayStatus)
		attendances.GET("/history", h.GetHistory)
		attendances.GET("/month/:year/:month", h.GetMonthly)
		attendances.GET("/all/today", middleware.RoleMiddleware("ADMIN", "HR"), h.GetAllToday)
	}
}
