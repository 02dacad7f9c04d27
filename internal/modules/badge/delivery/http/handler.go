package http

import (
	badgeService "anoa.com/kitaplik/internal/modules/badge/service"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	service badgeService.BadgeService
}

func NewBadgeHandler(service badgeService.BadgeService) *BadgeHandler {
	return &BadgeHandler{service: service}
}

func (h *BadgeHandler) MyBadges(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	badges, err := h.service.UserBadges(dbctx.New(c.Request.Context()), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, badges)
}
