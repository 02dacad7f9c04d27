package http

import (
	bookDto "anoa.com/kitaplik/internal/modules/book/dto"
	bookService "anoa.com/kitaplik/internal/modules/book/service"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	service bookService.BookService
}

func NewBookHandler(service bookService.BookService) *BookHandler {
	return &BookHandler{service: service}
}

func (h *BookHandler) SetGoal(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req bookDto.SetGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	goal, err := h.service.SetGoal(c.Request.Context(), userID, req.Target)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, goal)
}

func (h *BookHandler) GetGoal(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	goal, err := h.service.CurrentGoal(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, goal)
}
