package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, writeMiddleware ...gin.HandlerFunc) {
	mark := append(append([]gin.HandlerFunc{}, writeMiddleware...), h.Mark)

	attendance := r.Group("/attendance")
	{
		attendance.POST("/", mark...)
		attendance.GET("/employee/:employee_id", h.GetByEmployee)
		attendance.GET("/date/:date", h.GetByDate)
	}
}
