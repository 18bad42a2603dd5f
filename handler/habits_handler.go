package handler

import (
	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type HabitsHandler struct {
	habits *usecase.HabitService
}

func NewHabitsHandler(habits *usecase.HabitService) *HabitsHandler {
	return &HabitsHandler{habits: habits}
}

func (h *HabitsHandler) List(c *gin.Context) {
	habits, err := h.habits.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, habits)
}

func (h *HabitsHandler) Log(c *gin.Context) {
	var req dto.HabitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	res, err := h.habits.Log(c.Request.Context(), middleware.UserID(c),
		c.Param("id"), model.HabitTier(req.Tier))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.HabitLogResponse{
		Habit:  res.Habit,
		Score:  res.Score,
		Streak: res.Streak,
	})
}
