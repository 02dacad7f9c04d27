package http

import (
	"strconv"

	leaderboardService "anoa.com/kitaplik/internal/modules/leaderboard/service"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", leaderboardService.TimeframeAllTime) // "all_time", "monthly", "weekly"
	limitStr := c.DefaultQuery("limit", "10")
	limit, _ := strconv.Atoi(limitStr)

	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), limit, timeframe)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, leaderboard)
}
