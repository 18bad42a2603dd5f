package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// EventsHandler is the chat entry point: the transport bridge posts every
// user turn here and relays the replies back into the conversation.
type EventsHandler struct {
	users      *usecase.UserService
	activities *usecase.ActivityService
	wizard     *usecase.WizardService
	jwtSecret  string
	tokenTTL   time.Duration
	appBaseURL string
}

func NewEventsHandler(users *usecase.UserService, activities *usecase.ActivityService,
	wizard *usecase.WizardService, jwtSecret string, tokenTTL time.Duration, appBaseURL string) *EventsHandler {
	return &EventsHandler{
		users:      users,
		activities: activities,
		wizard:     wizard,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		appBaseURL: appBaseURL,
	}
}

func (h *EventsHandler) HandleEvent(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	ev := req.ToModel()
	ctx := c.Request.Context()

	_, created, err := h.users.EnsureUser(ctx, ev.UserID, ev.Username)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	replies, err := h.route(ctx, ev, created)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.EventResponse{Replies: replies})
}

func (h *EventsHandler) route(ctx context.Context, ev model.InboundEvent, newUser bool) ([]model.Reply, error) {
	active, err := h.wizard.Active(ctx, ev.UserID)
	if err != nil {
		return nil, err
	}

	if ev.IsChoice() {
		if active {
			return h.wizard.HandleEvent(ctx, ev)
		}
		// stray button press from a dialog that already ended
		return nil, nil
	}

	text := strings.TrimSpace(ev.Text)
	if strings.HasPrefix(text, "/") {
		return h.command(ctx, ev, text, newUser)
	}
	if active {
		return h.wizard.HandleEvent(ctx, ev)
	}
	if text == "" {
		return []model.Reply{model.TextReply("Send me something to capture, or /start for a tour.")}, nil
	}
	return h.capture(ctx, ev.UserID, text)
}

func (h *EventsHandler) command(ctx context.Context, ev model.InboundEvent, text string, newUser bool) ([]model.Reply, error) {
	command := strings.ToLower(strings.Fields(text)[0])
	switch command {
	case "/start":
		if newUser {
			return []model.Reply{model.TextReply(
				"Welcome 👋 I turn whatever is on your mind into a quest log.\n" +
					"Run /onboard for a guided tour of your goals, /onboard_manual to just list them,\n" +
					"or send me any thought and I'll capture it.")}, nil
		}
		return []model.Reply{model.TextReply(
			"Welcome back. Send me anything to capture it; /status shows the scoreboard.")}, nil

	case "/onboard":
		return h.wizard.StartGuidedOnboarding(ctx, ev.UserID)

	case "/onboard_manual":
		return h.wizard.StartManualOnboarding(ctx, ev.UserID)

	case "/organize":
		return h.wizard.StartOrganize(ctx, ev.UserID)

	case "/newhabit":
		return h.wizard.StartHabitCreation(ctx, ev.UserID)

	case "/cancel":
		return h.wizard.Cancel(ctx, ev.UserID)

	case "/status":
		return h.status(ctx, ev.UserID)

	case "/app":
		token, err := utils.GenerateAccessToken(ev.UserID, h.jwtSecret, h.tokenTTL)
		if err != nil {
			return nil, err
		}
		return []model.Reply{model.TextReply(fmt.Sprintf(
			"Your app link (valid %s):\n%s/?token=%s", h.tokenTTL, h.appBaseURL, token))}, nil
	}
	return []model.Reply{model.TextReply(
		"I don't know that command. Try /onboard, /organize, /newhabit, /status, /app or /cancel.")}, nil
}

func (h *EventsHandler) status(ctx context.Context, userID string) ([]model.Reply, error) {
	summary, err := h.users.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := summary.StatusCounts
	done := counts[model.StatusComplete] + counts[model.StatusCompleteLate]
	text := fmt.Sprintf(
		"🏅 %s — %d points\n❤️ Vitality %d/%d   💎 Gems %d\n📥 %d captured · 🗂 %d ready · ▶️ %d in progress · ✅ %d done",
		summary.Rank, summary.TotalScore,
		summary.Vitality, model.VitalityMax, summary.Gems,
		counts[model.StatusCaptured], counts[model.StatusOrganized],
		counts[model.StatusInProgress], done)
	return []model.Reply{model.TextReply(text)}, nil
}

func (h *EventsHandler) capture(ctx context.Context, userID, text string) ([]model.Reply, error) {
	body, link := splitTrailingLink(text)
	res, err := h.activities.Capture(ctx, userID, body, link)
	if err != nil {
		return nil, err
	}
	return []model.Reply{model.TextReply(fmt.Sprintf(
		"📥 %s captured, +%d. /organize when you're ready to sort the inbox.",
		res.Activity.HumanID, res.Score))}, nil
}

// splitTrailingLink peels a URL off the end of a capture ("read this
// https://…") so it lands in the link field instead of the title.
func splitTrailingLink(text string) (body, link string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return text, ""
	}
	last := fields[len(fields)-1]
	if !strings.HasPrefix(last, "http://") && !strings.HasPrefix(last, "https://") {
		return text, ""
	}
	body = strings.TrimSpace(strings.TrimSuffix(text, last))
	if body == "" {
		body = last
	}
	return body, last
}
