package payroll

import (
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("/current", h.GetCurrent)
		payrolls.GET("/history", h.GetHistory)
		payrolls.GET("/period/:year/:month", middleware.RoleMiddleware("ADMIN", "HR"), h.GetAllByPeriod)
		if redisClient != nil {
			payrolls.POST(
				"/generate",
				middleware.RateLimitByUser(0.5, 2),
				middleware.Idempotency(redisClient),
				middleware.RoleMiddleware("ADMIN", "HR"),
				h.Generate,
			)
		} else {
			payrolls.POST("/generate",
				middleware.RateLimitByUser(0.5, 2),
				middleware.RoleMiddleware("ADMIN", "HR"),
				h.Generate,
			)
		}
		payrolls.PATCH("/:id/adjustments", middleware.RoleMiddleware("ADMIN", "HR"), h.UpdateAdjustments)
		payrolls.PATCH("/:id/status", middleware.RoleMiddleware("ADMIN", "HR"), h.SetStatus)
	}
}
