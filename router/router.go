package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pandemic-deck/controller"
	"pandemic-deck/middleware"
	"pandemic-deck/service"
	"pandemic-deck/ws"
)

type Options struct {
	AuthToken string
}

func InitRouter(r *gin.Engine, session *service.Session, hub *ws.Hub, opts Options) {
	deckCtl := controller.NewDeckController(session)

	// 查询接口
	api := r.Group("/api/deck")
	{
		api.GET("", deckCtl.GetSnapshot)
		api.GET("/forecast", deckCtl.Forecast)
	}

	// 修改接口，配置了 token 时需要鉴权
	mutate := api.Group("", middleware.AuthMiddleware(opts.AuthToken))
	{
		mutate.POST("/discard", deckCtl.Discard())
		mutate.POST("/discard/remove", deckCtl.RemoveDiscarded())
		mutate.POST("/removed/return", deckCtl.ReturnRemoved)
		mutate.POST("/cities", deckCtl.AddCity)
		mutate.POST("/epidemic", deckCtl.TriggerEpidemic())
		mutate.POST("/player/draw/city", deckCtl.DrawPlayerCity())
		mutate.POST("/player/draw/event", deckCtl.DrawPlayerEvent)
		mutate.POST("/player/draw/epidemic", deckCtl.DrawPlayerEpidemic)
		mutate.POST("/player/remove", deckCtl.RemovePlayerCity())
		mutate.POST("/player/return", deckCtl.ReturnPlayerCity())
		mutate.POST("/new-game", deckCtl.NewGame)
		mutate.POST("/reset", deckCtl.Reset)
		mutate.POST("/undo", deckCtl.Undo)
	}

	// WebSocket 路由
	r.GET("/ws", hub.Handler(session))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
