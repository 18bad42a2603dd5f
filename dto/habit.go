package dto

import "main/model"

type HabitLogRequest struct {
	Tier string `json:"tier" binding:"required,oneof=easy medium hard peak"`
}

type HabitLogResponse struct {
	Habit  *model.Habit `json:"habit"`
	Score  int          `json:"score"`
	Streak int          `json:"streak"`
}
