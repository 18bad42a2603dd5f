package handler

import (
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	users *usecase.UserService
}

func NewSummaryHandler(users *usecase.UserService) *SummaryHandler {
	return &SummaryHandler{users: users}
}

func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.users.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, summary)
}
