package usecase

import (
	"context"
	"fmt"
	"strings"

	"main/model"
)

// Habit creation is the shortest dialog: name, life area, then the four
// difficulty tiers in one slash-separated line.

func (w *WizardService) StartHabitCreation(ctx context.Context, userID string) ([]model.Reply, error) {
	state, err := w.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	ok, replies := w.gateNewFlow(state, model.FlowHabitCreate)
	if !ok {
		return replies, nil
	}

	state.Flow = model.FlowHabitCreate
	state.Step = stepHabitName
	state.Phase = model.PhaseIdle
	state.HabitDraft = &model.HabitDraftState{}

	prompt, err := w.issuePrompt(ctx, state)
	if err != nil {
		return nil, err
	}
	if err := w.persist(ctx, state); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (w *WizardService) promptHabitCreate(state *model.ConversationState) ([]model.Reply, error) {
	switch state.Step {
	case stepHabitName:
		return []model.Reply{model.TextReply("What habit do you want to build? Give it a short name.")}, nil
	case stepHabitArea:
		return []model.Reply{{
			Text:    "Which life area does it belong to?",
			Choices: areaChoices("habit:area:"),
		}}, nil
	case stepHabitTiers:
		return []model.Reply{model.TextReply(
			"Describe four effort tiers for it, separated by `/`:\n" +
				"easy / medium / hard / peak\n" +
				"Example: 10 min walk / 30 min walk / 5k run / 10k run")}, nil
	}
	return nil, &model.InvalidStateError{Op: "habit_create", Detail: "unknown step " + state.Step}
}

func (w *WizardService) handleHabitCreate(ctx context.Context, state *model.ConversationState, ev model.InboundEvent) ([]model.Reply, error) {
	draft := state.HabitDraft
	if draft == nil {
		return nil, &model.InvalidStateError{Op: "habit_create", Detail: "no draft in flight"}
	}

	switch state.Step {
	case stepHabitName:
		if ev.IsChoice() || strings.TrimSpace(ev.Text) == "" {
			return nil, model.NewValidationError("a habit needs a name")
		}
		draft.Title = truncateTitle(ev.Text, 60)
		state.Step = stepHabitArea
		state.Phase = model.PhaseIdle
		return nil, nil

	case stepHabitArea:
		if !ev.IsChoice() {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		flow, step, val := choiceParts(ev.Choice)
		if flow != "habit" || step != "area" {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		area := model.LifeArea(val)
		if !model.ValidLifeAreas[area] {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		draft.LifeArea = area
		state.Step = stepHabitTiers
		state.Phase = model.PhaseIdle
		return nil, nil

	case stepHabitTiers:
		if ev.IsChoice() {
			return nil, model.NewValidationError("type the four tiers, separated by `/`")
		}
		parts := strings.Split(ev.Text, "/")
		tiers := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				tiers = append(tiers, trimmed)
			}
		}
		if len(tiers) != 4 {
			return nil, model.NewValidationError("I need exactly four tier descriptions separated by `/`, got %d", len(tiers))
		}

		habit, err := w.habits.Create(ctx, state.UserID, draft.Title, draft.LifeArea, model.TierSet{
			Easy:   tiers[0],
			Medium: tiers[1],
			Hard:   tiers[2],
			Peak:   tiers[3],
		})
		if err != nil {
			return nil, err
		}

		state.Flow = model.FlowNone
		return []model.Reply{model.TextReply(fmt.Sprintf(
			"Habit %s «%s» is live 💪 Log a session any time — the harder the tier, the more it pays.",
			habit.HumanID, habit.Title))}, nil
	}
	return nil, &model.InvalidStateError{Op: "habit_create", Detail: "unknown step " + state.Step}
}
