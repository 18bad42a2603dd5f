package handler

import (
	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type GoalsHandler struct {
	goals *usecase.GoalService
}

func NewGoalsHandler(goals *usecase.GoalService) *GoalsHandler {
	return &GoalsHandler{goals: goals}
}

func (h *GoalsHandler) List(c *gin.Context) {
	goals, err := h.goals.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, goals)
}

func (h *GoalsHandler) SetStatus(c *gin.Context) {
	var req dto.GoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	goal, err := h.goals.SetStatus(c.Request.Context(), middleware.UserID(c),
		c.Param("id"), model.GoalStatus(req.Status))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, goal)
}
