package employee

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee endpoints. writeMiddleware runs in front
// of the mutating routes only.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, writeMiddleware ...gin.HandlerFunc) {
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeMiddleware...), h)
	}

	employees := r.Group("/employees")
	{
		employees.GET("/", handler.GetAll)
		employees.GET("/:employee_id", handler.GetByEmployeeID)
		employees.POST("/", write(handler.Create)...)
		employees.DELETE("/:employee_id", write(handler.Delete)...)
	}
}
