package http

import (
	statService "anoa.com/kitaplik/internal/modules/stat/service"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) GetCommunityStats(c *gin.Context) {
	stats, err := h.statService.CommunityStats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, stats)
}
