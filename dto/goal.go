package dto

type GoalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed paused abandoned"`
}
