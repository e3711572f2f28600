package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pandemic-deck/deck"
	"pandemic-deck/dto"
	"pandemic-deck/entities"
	"pandemic-deck/service"
)

type DeckController struct {
	session *service.Session
}

func NewDeckController(session *service.Session) *DeckController {
	return &DeckController{session: session}
}

// statusFor 把错误类型映射成 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrDuplicateCity),
		errors.Is(err, entities.ErrInsufficientCards),
		errors.Is(err, entities.ErrNoHistory):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

func respond(c *gin.Context, snapshot dto.Snapshot, err error) {
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// cityHandler 只需要城市名的操作共用同一个处理流程
func cityHandler(op func(ctx context.Context, city string) (dto.Snapshot, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		snapshot, err := op(c.Request.Context(), req.City)
		respond(c, snapshot, err)
	}
}

func (d *DeckController) GetSnapshot(c *gin.Context) {
	snapshot, err := d.session.Snapshot(c.Request.Context())
	respond(c, snapshot, err)
}

func (d *DeckController) Discard() gin.HandlerFunc {
	return cityHandler(d.session.DiscardInfectionCard)
}

func (d *DeckController) RemoveDiscarded() gin.HandlerFunc {
	return cityHandler(d.session.RemoveDiscardedInfectionCard)
}

// TriggerEpidemic 请求中的 city 是从感染牌堆底抽出的城市
func (d *DeckController) TriggerEpidemic() gin.HandlerFunc {
	return cityHandler(d.session.TriggerEpidemic)
}

func (d *DeckController) DrawPlayerCity() gin.HandlerFunc {
	return cityHandler(d.session.DrawPlayerCity)
}

func (d *DeckController) RemovePlayerCity() gin.HandlerFunc {
	return cityHandler(d.session.RemovePlayerCityCard)
}

func (d *DeckController) ReturnPlayerCity() gin.HandlerFunc {
	return cityHandler(d.session.ReturnRemovedPlayerCityCard)
}

func (d *DeckController) ReturnRemoved(c *gin.Context) {
	var req dto.ReturnRemovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	zone, err := deck.ParseZone(req.Zone)
	if err != nil {
		abortWithError(c, err)
		return
	}
	snapshot, err := d.session.ReturnRemovedInfectionCard(c.Request.Context(), req.City, zone)
	respond(c, snapshot, err)
}

func (d *DeckController) AddCity(c *gin.Context) {
	var req dto.AddCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	color, ok := entities.ParseCityColor(req.Color)
	if !ok {
		badRequest(c, fmt.Errorf("%w: invalid color %q", entities.ErrValidation, req.Color))
		return
	}
	snapshot, err := d.session.AddCity(c.Request.Context(), req.City, req.Count, color)
	respond(c, snapshot, err)
}

func (d *DeckController) DrawPlayerEvent(c *gin.Context) {
	snapshot, err := d.session.DrawPlayerEvent(c.Request.Context())
	respond(c, snapshot, err)
}

func (d *DeckController) DrawPlayerEpidemic(c *gin.Context) {
	snapshot, err := d.session.DrawPlayerEpidemicWithoutEffect(c.Request.Context())
	respond(c, snapshot, err)
}

func (d *DeckController) NewGame(c *gin.Context) {
	var req dto.NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	snapshot, err := d.session.NewGame(c.Request.Context(), entities.GameSetup{
		Players: req.Players,
		Events:  req.Events,
	})
	respond(c, snapshot, err)
}

func (d *DeckController) Reset(c *gin.Context) {
	snapshot, err := d.session.Reset(c.Request.Context())
	respond(c, snapshot, err)
}

func (d *DeckController) Undo(c *gin.Context) {
	snapshot, err := d.session.Undo(c.Request.Context())
	respond(c, snapshot, err)
}

func (d *DeckController) Forecast(c *gin.Context) {
	var query dto.ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	forecast, err := d.session.Forecast(c.Request.Context(), query.Draws, query.Epidemic)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}
