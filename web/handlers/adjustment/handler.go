package adjustment

import (
	"github.com/gin-gonic/gin"

	"pontual.app/pontual/core"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/adjustments", endpoint.Submit)
	r.GET("/adjustments", endpoint.List)
	r.DELETE("/adjustments/:id", endpoint.Withdraw)
	r.PUT("/adjustments/:id", middlewares.RequireReviewer(), endpoint.Decide)
}
