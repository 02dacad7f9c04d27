package http

import (
	questService "anoa.com/kitaplik/internal/modules/quest/service"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type QuestHandler struct {
	service questService.QuestService
}

func NewQuestHandler(service questService.QuestService) *QuestHandler {
	return &QuestHandler{service: service}
}

func (h *QuestHandler) ListActive(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	quests, err := h.service.ActiveQuests(dbctx.New(c.Request.Context()), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, quests)
}
