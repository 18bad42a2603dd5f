package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

// WizardService drives the multi-step dialogs (onboarding, organize queue,
// habit creation). One flow per user; state is persisted after every step so
// a turn can land on any process instance days later and resume where it
// left off.
type WizardService struct {
	stores     Stores
	cache      ConversationCache
	users      *UserService
	goals      *GoalService
	activities *ActivityService
	habits     *HabitService
	now        nowFunc
}

func NewWizardService(stores Stores, cache ConversationCache, users *UserService,
	goals *GoalService, activities *ActivityService, habits *HabitService) *WizardService {
	return &WizardService{
		stores:     stores,
		cache:      cache,
		users:      users,
		goals:      goals,
		activities: activities,
		habits:     habits,
		now:        time.Now,
	}
}

// Step tags per flow.
const (
	stepAreaIdeal    = "area_ideal"
	stepAreaCurrent  = "area_current"
	stepAreaObstacle = "area_obstacle"
	stepGoalsText    = "goals_text"
	stepInterval     = "interval"

	stepGoalSelect = "goal_select"
	stepTags       = "tags"
	stepLifeArea   = "life_area"
	stepHorizon    = "horizon"
	stepExecType   = "exec_type"
	stepCategory   = "category"

	stepHabitName  = "habit_name"
	stepHabitArea  = "habit_area"
	stepHabitTiers = "habit_tiers"
)

// Active reports whether the user is mid-dialog; events are routed to the
// wizard exactly when this holds.
func (w *WizardService) Active(ctx context.Context, userID string) (bool, error) {
	state, err := w.loadState(ctx, userID)
	if err != nil {
		return false, err
	}
	return state.Active(), nil
}

// HandleEvent advances the user's active flow by one turn.
func (w *WizardService) HandleEvent(ctx context.Context, ev model.InboundEvent) ([]model.Reply, error) {
	state, err := w.loadState(ctx, ev.UserID)
	if err != nil {
		return nil, err
	}
	if !state.Active() {
		return nil, &model.InvalidStateError{Op: "wizard", Detail: "no active dialog"}
	}
	if ev.EventID != "" && ev.EventID == state.LastEventID {
		// duplicate delivery of an already-processed turn
		return nil, nil
	}

	var replies []model.Reply
	var handleErr error
	switch state.Flow {
	case model.FlowOnboarding:
		replies, handleErr = w.handleOnboarding(ctx, state, ev)
	case model.FlowOnboardingManual:
		replies, handleErr = w.handleManualOnboarding(ctx, state, ev)
	case model.FlowOrganize:
		replies, handleErr = w.handleOrganize(ctx, state, ev)
	case model.FlowHabitCreate:
		replies, handleErr = w.handleHabitCreate(ctx, state, ev)
	default:
		return nil, &model.InvalidStateError{Op: "wizard", Detail: "unknown flow " + string(state.Flow)}
	}

	if handleErr != nil {
		var ve *model.ValidationError
		if errors.As(handleErr, &ve) {
			// invalid input re-issues the current prompt instead of advancing
			// or silently dropping the turn
			reprompt, perr := w.prompt(ctx, state)
			if perr != nil {
				return nil, perr
			}
			state.LastEventID = ev.EventID
			if perr := w.persist(ctx, state); perr != nil {
				return nil, perr
			}
			return append([]model.Reply{model.TextReply("⚠️ " + ve.Detail)}, reprompt...), nil
		}
		return nil, handleErr
	}

	utils.TrackWizardStep(string(state.Flow))
	state.LastEventID = ev.EventID

	if state.Flow == model.FlowNone {
		// final step done; the conversation state goes away entirely
		if err := w.clear(ctx, ev.UserID); err != nil {
			return nil, err
		}
		return replies, nil
	}

	next, err := w.issuePrompt(ctx, state)
	if err != nil {
		return nil, err
	}
	replies = append(replies, next...)
	if err := w.persist(ctx, state); err != nil {
		return nil, err
	}
	return replies, nil
}

// Cancel drops the active dialog, if any.
func (w *WizardService) Cancel(ctx context.Context, userID string) ([]model.Reply, error) {
	state, err := w.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.Active() {
		return []model.Reply{model.TextReply("Nothing to cancel.")}, nil
	}
	if err := w.clear(ctx, userID); err != nil {
		return nil, err
	}
	return []model.Reply{model.TextReply("Dialog cancelled.")}, nil
}

// gateNewFlow checks whether a new flow may begin. A retried start of the
// same flow while its first prompt is outstanding is debounced silently.
func (w *WizardService) gateNewFlow(state *model.ConversationState, flow model.FlowTag) (bool, []model.Reply) {
	if !state.Active() {
		return true, nil
	}
	if state.Flow == flow && state.Phase == model.PhaseAwaitingReply {
		return false, nil
	}
	return false, []model.Reply{model.TextReply("You're already in a dialog. Finish it first or send /cancel.")}
}

// issuePrompt emits the prompt for the current step unless one is already
// outstanding (the debounce against retried events).
func (w *WizardService) issuePrompt(ctx context.Context, state *model.ConversationState) ([]model.Reply, error) {
	if state.Phase == model.PhaseAwaitingReply {
		return nil, nil
	}
	replies, err := w.prompt(ctx, state)
	if err != nil {
		return nil, err
	}
	state.Phase = model.PhaseAwaitingReply
	return replies, nil
}

// prompt builds the current step's prompt without touching the phase.
func (w *WizardService) prompt(ctx context.Context, state *model.ConversationState) ([]model.Reply, error) {
	switch state.Flow {
	case model.FlowOnboarding, model.FlowOnboardingManual:
		return w.promptOnboarding(state)
	case model.FlowOrganize:
		return w.promptOrganize(ctx, state)
	case model.FlowHabitCreate:
		return w.promptHabitCreate(state)
	}
	return nil, &model.InvalidStateError{Op: "wizard", Detail: "unknown flow " + string(state.Flow)}
}

func (w *WizardService) loadState(ctx context.Context, userID string) (*model.ConversationState, error) {
	if w.cache != nil {
		state, err := w.cache.Get(ctx, userID)
		if err != nil {
			log.Printf("conversation cache read failed for %s: %v", userID, err)
		} else if state != nil {
			return state, nil
		}
	}

	state, err := w.stores.Conversations.Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return &model.ConversationState{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (w *WizardService) persist(ctx context.Context, state *model.ConversationState) error {
	state.UpdatedAt = w.now()
	if err := w.stores.Conversations.Save(ctx, state); err != nil {
		return err
	}
	if w.cache != nil {
		if err := w.cache.Set(ctx, state); err != nil {
			log.Printf("conversation cache write failed for %s: %v", state.UserID, err)
		}
	}
	return nil
}

func (w *WizardService) clear(ctx context.Context, userID string) error {
	if err := w.stores.Conversations.Delete(ctx, userID); err != nil {
		return err
	}
	if w.cache != nil {
		if err := w.cache.Delete(ctx, userID); err != nil {
			log.Printf("conversation cache delete failed for %s: %v", userID, err)
		}
	}
	return nil
}

// choiceParts splits a "flow:step:value" choice payload.
func choiceParts(value string) (flow, step, val string) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 {
		return "", "", ""
	}
	return parts[0], parts[1], parts[2]
}

func areaChoices(payloadPrefix string) []model.Choice {
	choices := make([]model.Choice, 0, len(model.LifeAreas))
	for _, area := range model.LifeAreas {
		choices = append(choices, model.Choice{
			Label: humanize(string(area)),
			Value: payloadPrefix + string(area),
		})
	}
	return choices
}

func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncateTitle(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
