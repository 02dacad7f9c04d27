package http

import (
	"time"

	dailyService "anoa.com/kitaplik/internal/modules/daily/service"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type DailyHandler struct {
	service dailyService.DailyService
}

func NewDailyHandler(service dailyService.DailyService) *DailyHandler {
	return &DailyHandler{service: service}
}

// date reads an optional ?date=YYYY-MM-DD, defaulting to today.
func (h *DailyHandler) date(c *gin.Context) (string, error) {
	date := c.Query("date")
	if date == "" {
		return h.service.Today(), nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", apperror.ErrInvalidInput
	}
	return date, nil
}

func (h *DailyHandler) TodayTrivia(c *gin.Context) {
	date, err := h.date(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	set, err := h.service.TodayTrivia(c.Request.Context(), date)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, set)
}

func (h *DailyHandler) BookOfTheDay(c *gin.Context) {
	date, err := h.date(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	pick, err := h.service.BookOfTheDay(c.Request.Context(), date)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, pick)
}
