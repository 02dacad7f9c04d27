package http

import (
	duelDto "anoa.com/kitaplik/internal/modules/duel/dto"
	rewardDto "anoa.com/kitaplik/internal/modules/reward/dto"
	rewardService "anoa.com/kitaplik/internal/modules/reward/service"
	"anoa.com/kitaplik/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RewardHandler exposes the user events that move XP, points and progress.
type RewardHandler struct {
	service rewardService.RewardService
}

func NewRewardHandler(service rewardService.RewardService) *RewardHandler {
	return &RewardHandler{service: service}
}

func (h *RewardHandler) CompleteBook(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	bookID, err := response.ParamUUID(c, "book_id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.OnBookCompleted(c.Request.Context(), userID, bookID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *RewardHandler) SubmitTrivia(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	var req rewardDto.TriviaSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.OnTriviaSubmitted(c.Request.Context(), userID, req.Answers)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *RewardHandler) Challenge(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	var req duelDto.ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	duel, err := h.service.OnDuelChallenged(c.Request.Context(), userID,
		uuid.MustParse(req.OpponentID), uuid.MustParse(req.BookID))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Created(c, duel)
}

func (h *RewardHandler) AcceptDuel(c *gin.Context) {
	h.respond(c, true)
}

func (h *RewardHandler) RejectDuel(c *gin.Context) {
	h.respond(c, false)
}

func (h *RewardHandler) respond(c *gin.Context, accept bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	duelID, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	respond := h.service.OnDuelRejected
	if accept {
		respond = h.service.OnDuelAccepted
	}
	duel, err := respond(c.Request.Context(), duelID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, duel)
}

func (h *RewardHandler) SendGift(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	var req rewardDto.GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	gift, err := h.service.OnGiftSent(c.Request.Context(), userID, uuid.MustParse(req.ReceiverID), req.Amount, req.Note)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Created(c, gift)
}

func (h *RewardHandler) AddFriend(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	var req rewardDto.FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.OnFriendAdded(c.Request.Context(), userID, uuid.MustParse(req.FriendID))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, res)
}

func (h *RewardHandler) ClaimQuest(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	questID, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	quest, err := h.service.OnQuestClaimed(c.Request.Context(), userID, questID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.OK(c, quest)
}
