package handler

import (
	"time"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ActivitiesHandler serves the web view: listing work and driving the
// lifecycle transitions the chat wizard does not cover.
type ActivitiesHandler struct {
	activities *usecase.ActivityService
}

func NewActivitiesHandler(activities *usecase.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{activities: activities}
}

func (h *ActivitiesHandler) ListReady(c *gin.Context) {
	items, err := h.activities.ListReady(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, items)
}

func (h *ActivitiesHandler) ListCompleted(c *gin.Context) {
	items, err := h.activities.ListCompleted(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, items)
}

func (h *ActivitiesHandler) Organize(c *gin.Context) {
	var req dto.OrganizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var deadline time.Time
	if req.Deadline != nil {
		deadline = *req.Deadline
	}
	res, err := h.activities.Organize(c.Request.Context(), middleware.UserID(c), c.Param("id"),
		usecase.OrganizeInput{
			GoalHumanID:     req.GoalID,
			PriorityTag:     req.PriorityTag,
			LifeArea:        model.LifeArea(req.LifeArea),
			Horizon:         model.Horizon(req.Horizon),
			ExecutionType:   model.ExecutionType(req.ExecutionType),
			Category:        model.Category(req.Category),
			EstimateMinutes: req.EstimateMinutes,
			Deadline:        deadline,
			DependsOn:       req.DependsOn,
			MentalBlock:     req.MentalBlock,
		})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.OrganizeResponse{Activity: res.Activity, Score: res.Score})
}

func (h *ActivitiesHandler) StartFocus(c *gin.Context) {
	activity, err := h.activities.StartFocus(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, activity)
}

func (h *ActivitiesHandler) FinishFocus(c *gin.Context) {
	res, err := h.activities.FinishFocus(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.FinishFocusResponse{
		Activity:      res.Activity,
		Score:         res.Score,
		IsLate:        res.IsLate,
		Gems:          res.Gems,
		ActualMinutes: res.ActualMinutes,
	})
}

func (h *ActivitiesHandler) Evaluate(c *gin.Context) {
	var req dto.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	res, err := h.activities.Evaluate(c.Request.Context(), middleware.UserID(c), c.Param("id"),
		req.FeelingBefore, req.FeelingAfter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.EvaluateResponse{
		Activity:  res.Activity,
		MoodDelta: res.MoodDelta,
		Score:     res.Score,
	})
}

func (h *ActivitiesHandler) Split(c *gin.Context) {
	var req dto.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	res, err := h.activities.Split(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Parts)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.SplitResponse{
		Parent:   res.Parent,
		Children: res.Children,
		Score:    res.Score,
	})
}

func (h *ActivitiesHandler) Abandon(c *gin.Context) {
	activity, err := h.activities.Abandon(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, activity)
}
