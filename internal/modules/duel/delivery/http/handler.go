package http

import (
	"anoa.com/kitaplik/internal/entity"
	duelDto "anoa.com/kitaplik/internal/modules/duel/dto"
	duelService "anoa.com/kitaplik/internal/modules/duel/service"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type DuelHandler struct {
	service duelService.DuelService
}

func NewDuelHandler(service duelService.DuelService) *DuelHandler {
	return &DuelHandler{service: service}
}

func (h *DuelHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var q duelDto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	duels, err := h.service.ListForUser(dbctx.New(c.Request.Context()), userID, entity.DuelStatus(q.Status))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, duels)
}
