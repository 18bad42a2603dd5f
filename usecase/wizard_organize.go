package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"main/model"
)

// The organize dialog walks the captured inbox item by item: goal link,
// priority tags, life area, horizon, execution type, category. The category
// answer commits the item and moves the queue forward.

func (w *WizardService) StartOrganize(ctx context.Context, userID string) ([]model.Reply, error) {
	state, err := w.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	ok, replies := w.gateNewFlow(state, model.FlowOrganize)
	if !ok {
		return replies, nil
	}

	captured, err := w.activities.ListCaptured(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(captured) == 0 {
		return []model.Reply{model.TextReply("Inbox zero — nothing to organize 🎉")}, nil
	}

	ids := make([]string, 0, len(captured))
	for _, activity := range captured {
		ids = append(ids, activity.ActivityID)
	}

	state.Flow = model.FlowOrganize
	state.Step = stepGoalSelect
	state.Phase = model.PhaseIdle
	state.Organize = &model.OrganizeState{QueueIDs: ids}

	intro := model.TextReply(fmt.Sprintf("%d items in the inbox. Let's sort them.", len(captured)))
	prompt, err := w.issuePrompt(ctx, state)
	if err != nil {
		return nil, err
	}
	if err := w.persist(ctx, state); err != nil {
		return nil, err
	}
	return append([]model.Reply{intro}, prompt...), nil
}

func (w *WizardService) promptOrganize(ctx context.Context, state *model.ConversationState) ([]model.Reply, error) {
	org := state.Organize
	if org == nil || org.Pos >= len(org.QueueIDs) {
		return nil, &model.InvalidStateError{Op: "organize", Detail: "queue exhausted"}
	}

	activity, err := w.stores.Activities.Get(ctx, state.UserID, org.QueueIDs[org.Pos])
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf("(%d/%d) %s «%s»\n",
		org.Pos+1, len(org.QueueIDs), activity.HumanID, truncateTitle(activity.RawText, 60))

	switch state.Step {
	case stepGoalSelect:
		goals, err := w.goals.ListActive(ctx, state.UserID)
		if err != nil {
			return nil, err
		}
		if len(goals) == 0 {
			return []model.Reply{model.TextReply(header +
				"No active goals to link it to — reply `skip`.")}, nil
		}
		var b strings.Builder
		b.WriteString(header)
		b.WriteString("Link it to a goal? Reply with a number, or `skip`:\n")
		for i, goal := range goals {
			fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, goal.HumanID, goal.Title)
		}
		return []model.Reply{model.TextReply(strings.TrimRight(b.String(), "\n"))}, nil

	case stepTags:
		choices := make([]model.Choice, 0, len(model.PriorityDimensions)+1)
		for _, dim := range model.PriorityDimensions {
			label := humanize(string(dim))
			if org.HighDims[string(dim)] {
				label += " ✓"
			}
			choices = append(choices, model.Choice{
				Label: label,
				Value: "organize:tags:" + string(dim),
			})
		}
		choices = append(choices, model.Choice{Label: "Done", Value: "organize:tags:done"})
		return []model.Reply{{
			Text:    header + "Which of these run high? Toggle, then hit Done.",
			Choices: choices,
		}}, nil

	case stepLifeArea:
		return []model.Reply{{
			Text:    header + "Which life area?",
			Choices: areaChoices("organize:area:"),
		}}, nil

	case stepHorizon:
		horizons := []model.Horizon{
			model.HorizonToday, model.HorizonWeek, model.HorizonMonth,
			model.HorizonQuarter, model.HorizonAnnum, model.HorizonSomeday,
		}
		choices := make([]model.Choice, 0, len(horizons))
		for _, h := range horizons {
			choices = append(choices, model.Choice{
				Label: humanize(string(h)),
				Value: "organize:horizon:" + string(h),
			})
		}
		return []model.Reply{{Text: header + "When does this need to happen?", Choices: choices}}, nil

	case stepExecType:
		types := []model.ExecutionType{
			model.ExecDeepWork, model.ExecShallowWork, model.ExecErrand, model.ExecMeeting,
		}
		choices := make([]model.Choice, 0, len(types))
		for _, t := range types {
			choices = append(choices, model.Choice{
				Label: humanize(string(t)),
				Value: "organize:exec:" + string(t),
			})
		}
		return []model.Reply{{Text: header + "What kind of work is it?", Choices: choices}}, nil

	case stepCategory:
		categories := []model.Category{
			model.CategoryMainQuest, model.CategorySideQuest, model.CategoryMainten,
			model.CategorySocialObl, model.CategoryVoidFiller,
		}
		choices := make([]model.Choice, 0, len(categories))
		for _, c := range categories {
			choices = append(choices, model.Choice{
				Label: humanize(string(c)),
				Value: "organize:category:" + string(c),
			})
		}
		return []model.Reply{{Text: header + "And honestly — what is it to you?", Choices: choices}}, nil
	}
	return nil, &model.InvalidStateError{Op: "organize", Detail: "unknown step " + state.Step}
}

func (w *WizardService) handleOrganize(ctx context.Context, state *model.ConversationState, ev model.InboundEvent) ([]model.Reply, error) {
	org := state.Organize
	if org == nil || org.Pos >= len(org.QueueIDs) {
		return nil, &model.InvalidStateError{Op: "organize", Detail: "queue exhausted"}
	}

	switch state.Step {
	case stepGoalSelect:
		if ev.IsChoice() {
			return nil, model.NewValidationError("type a goal number or `skip`")
		}
		text := strings.ToLower(strings.TrimSpace(ev.Text))
		if text == "skip" {
			org.GoalHumanID = ""
		} else {
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, model.NewValidationError("that's not a number — reply with a goal number or `skip`")
			}
			goals, err := w.goals.ListActive(ctx, state.UserID)
			if err != nil {
				return nil, err
			}
			if n < 1 || n > len(goals) {
				return nil, model.NewValidationError("there's no goal number %d", n)
			}
			org.GoalHumanID = goals[n-1].HumanID
		}
		state.Step = stepTags
		state.Phase = model.PhaseIdle
		return nil, nil

	case stepTags:
		val, err := organizeChoice(ev, "tags")
		if err != nil {
			return nil, err
		}
		if val == "done" {
			state.Step = stepLifeArea
			state.Phase = model.PhaseIdle
			return nil, nil
		}
		dim, ok := model.ParsePriorityDimension(val)
		if !ok {
			return nil, model.NewValidationError("use the buttons to toggle tags")
		}
		if org.HighDims == nil {
			org.HighDims = map[string]bool{}
		}
		if org.HighDims[string(dim)] {
			delete(org.HighDims, string(dim))
		} else {
			org.HighDims[string(dim)] = true
		}
		// re-render the toggles in place; the step stays open
		return w.prompt(ctx, state)

	case stepLifeArea:
		val, err := organizeChoice(ev, "area")
		if err != nil {
			return nil, err
		}
		area := model.LifeArea(val)
		if !model.ValidLifeAreas[area] {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		org.LifeArea = area
		state.Step = stepHorizon
		state.Phase = model.PhaseIdle
		return nil, nil

	case stepHorizon:
		val, err := organizeChoice(ev, "horizon")
		if err != nil {
			return nil, err
		}
		horizon := model.Horizon(val)
		if !model.ValidHorizons[horizon] {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		org.Horizon = horizon
		state.Step = stepExecType
		state.Phase = model.PhaseIdle
		return nil, nil

	case stepExecType:
		val, err := organizeChoice(ev, "exec")
		if err != nil {
			return nil, err
		}
		execType := model.ExecutionType(val)
		if !model.ValidExecutionTypes[execType] {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		org.ExecType = execType
		state.Step = stepCategory
		state.Phase = model.PhaseIdle
		return nil, nil

	case stepCategory:
		val, err := organizeChoice(ev, "category")
		if err != nil {
			return nil, err
		}
		category := model.Category(val)
		if !model.ValidCategories[category] {
			return nil, model.NewValidationError("pick one of the buttons")
		}
		return w.commitOrganizeItem(ctx, state, category)
	}
	return nil, &model.InvalidStateError{Op: "organize", Detail: "unknown step " + state.Step}
}

// commitOrganizeItem applies the accumulated answers to the current item and
// advances the queue. An item that changed state underneath the dialog is
// skipped, not fatal.
func (w *WizardService) commitOrganizeItem(ctx context.Context, state *model.ConversationState, category model.Category) ([]model.Reply, error) {
	org := state.Organize
	itemID := org.QueueIDs[org.Pos]

	high := make(map[model.PriorityDimension]bool, len(org.HighDims))
	for dim, set := range org.HighDims {
		if set {
			high[model.PriorityDimension(dim)] = true
		}
	}

	var replies []model.Reply
	res, err := w.activities.Organize(ctx, state.UserID, itemID, OrganizeInput{
		GoalHumanID:   org.GoalHumanID,
		PriorityTag:   model.EncodePriorityTag(high),
		LifeArea:      org.LifeArea,
		Horizon:       org.Horizon,
		ExecutionType: org.ExecType,
		Category:      category,
	})
	switch {
	case err == nil:
		replies = append(replies, model.TextReply(fmt.Sprintf(
			"✅ %s organized, +%d points.", res.Activity.HumanID, res.Score)))
	case model.IsInvalidState(err) || errors.Is(err, model.ErrNotFound):
		replies = append(replies, model.TextReply("That item moved on without us — skipping it."))
	default:
		return nil, err
	}

	org.Pos++
	org.GoalHumanID = ""
	org.HighDims = nil
	org.LifeArea = ""
	org.Horizon = ""
	org.ExecType = ""
	state.Step = stepGoalSelect
	state.Phase = model.PhaseIdle

	if org.Pos >= len(org.QueueIDs) {
		state.Flow = model.FlowNone
		replies = append(replies, model.TextReply("That's the whole inbox 🎉 /app shows what's ready."))
	}
	return replies, nil
}

func organizeChoice(ev model.InboundEvent, wantStep string) (string, error) {
	if !ev.IsChoice() {
		return "", model.NewValidationError("pick one of the buttons")
	}
	flow, step, val := choiceParts(ev.Choice)
	if flow != "organize" || step != wantStep {
		return "", model.NewValidationError("pick one of the buttons")
	}
	return val, nil
}
