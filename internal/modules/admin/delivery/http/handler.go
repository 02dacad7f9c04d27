package handler

import (
	"context"
	"net/http"
	"time"

	"anoa.com/kitaplik/internal/modules/admin/dto"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/logger"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

// MarathonControl is the switch behind the marathon event.
type MarathonControl interface {
	Active(ctx context.Context) (bool, error)
	Start(ctx context.Context, d time.Duration) error
	Stop(ctx context.Context) error
	EndsAt(ctx context.Context) (time.Time, error)
}

type AdminHandler struct {
	marathon MarathonControl
	log      *logger.Logger
}

func NewAdminHandler(marathon MarathonControl, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		marathon: marathon,
		log:      log.With("handler", "admin"),
	}
}

func (h *AdminHandler) StartMarathon(c *gin.Context) {
	var input dto.StartMarathonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	d := time.Duration(input.Hours) * time.Hour
	if err := h.marathon.Start(c.Request.Context(), d); err != nil {
		response.ResponseError(c, apperror.New(http.StatusServiceUnavailable, "Maraton başlatılamadı", err))
		return
	}
	h.log.Info("marathon started", "hours", input.Hours, "by", c.GetString("user_id"))
	h.MarathonStatus(c)
}

func (h *AdminHandler) StopMarathon(c *gin.Context) {
	if err := h.marathon.Stop(c.Request.Context()); err != nil {
		response.ResponseError(c, apperror.New(http.StatusServiceUnavailable, "Maraton durdurulamadı", err))
		return
	}
	h.log.Info("marathon stopped", "by", c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"message": "Maraton sona erdi"})
}

func (h *AdminHandler) MarathonStatus(c *gin.Context) {
	ctx := c.Request.Context()
	active, err := h.marathon.Active(ctx)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	status := dto.MarathonStatus{Active: active}
	if active {
		endsAt, err := h.marathon.EndsAt(ctx)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		if !endsAt.IsZero() {
			status.EndsAt = &endsAt
		}
	}
	response.OK(c, status)
}
