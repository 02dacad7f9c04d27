package handler

import (
	"net/http"

	profile "anoa.com/kitaplik/internal/modules/profile/service"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetProfileByUsername(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kullanıcı adı gerekli"})
		return
	}

	res, err := h.profileService.GetProfileByUsername(c.Request.Context(), username)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *ProfileHandler) GetProgress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.profileService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, res)
}
