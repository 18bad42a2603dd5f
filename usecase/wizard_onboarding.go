package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
)

// Guided onboarding walks all six life areas with three questions each, then
// derives starter goals from the answers. Manual onboarding takes a single
// "area: goal" list instead. Both finish on the reminder-interval choice.

// Ideal-state answers shorter than this are treated as "no vision yet" and
// produce no goal for the area.
const idealAnswerMinRunes = 10

// Obstacle answers longer than this carry enough substance to warrant their
// own "overcome" goal next to the area goal.
const obstacleGoalMinRunes = 40

var reminderIntervals = []struct {
	Label string
	Value string
	D     time.Duration
}{
	{"Every 2 hours", "2h", 2 * time.Hour},
	{"Every 4 hours", "4h", 4 * time.Hour},
	{"Once a day", "24h", 24 * time.Hour},
}

func (w *WizardService) StartGuidedOnboarding(ctx context.Context, userID string) ([]model.Reply, error) {
	state, err := w.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	ok, replies := w.gateNewFlow(state, model.FlowOnboarding)
	if !ok {
		return replies, nil
	}

	state.Flow = model.FlowOnboarding
	state.Step = stepAreaIdeal
	state.Phase = model.PhaseIdle
	state.Onboarding = &model.OnboardingState{Answers: map[model.LifeArea]*model.AreaAnswers{}}

	intro := model.TextReply("Let's map out where you want your life to go. " +
		"We'll walk through six areas, three quick questions each.")
	prompt, err := w.issuePrompt(ctx, state)
	if err != nil {
		return nil, err
	}
	if err := w.persist(ctx, state); err != nil {
		return nil, err
	}
	return append([]model.Reply{intro}, prompt...), nil
}

func (w *WizardService) StartManualOnboarding(ctx context.Context, userID string) ([]model.Reply, error) {
	state, err := w.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	ok, replies := w.gateNewFlow(state, model.FlowOnboardingManual)
	if !ok {
		return replies, nil
	}

	state.Flow = model.FlowOnboardingManual
	state.Step = stepGoalsText
	state.Phase = model.PhaseIdle
	state.Onboarding = &model.OnboardingState{}

	prompt, err := w.issuePrompt(ctx, state)
	if err != nil {
		return nil, err
	}
	if err := w.persist(ctx, state); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (w *WizardService) promptOnboarding(state *model.ConversationState) ([]model.Reply, error) {
	switch state.Step {
	case stepAreaIdeal, stepAreaCurrent, stepAreaObstacle:
		ob := state.Onboarding
		if ob == nil || ob.AreaIndex >= len(model.LifeAreas) {
			return nil, &model.InvalidStateError{Op: "onboarding", Detail: "no area left to ask about"}
		}
		area := model.LifeAreas[ob.AreaIndex]
		header := fmt.Sprintf("[%d/%d] %s\n", ob.AreaIndex+1, len(model.LifeAreas), humanize(string(area)))
		switch state.Step {
		case stepAreaIdeal:
			return []model.Reply{model.TextReply(header +
				fmt.Sprintf("What would your ideal %s life look like?", area))}, nil
		case stepAreaCurrent:
			return []model.Reply{model.TextReply(header +
				"And where are you with it right now?")}, nil
		default:
			return []model.Reply{model.TextReply(header +
				"What's the main obstacle standing in the way?")}, nil
		}
	case stepGoalsText:
		return []model.Reply{model.TextReply(
			"Send me your goals, one per line, as `area: goal`.\n" +
				"Areas: physical, mental, career, financial, social, leisure.\n" +
				"Example:\n  career: ship the side project\n  physical: run a 10k")}, nil
	case stepInterval:
		choices := make([]model.Choice, 0, len(reminderIntervals))
		for _, iv := range reminderIntervals {
			choices = append(choices, model.Choice{
				Label: iv.Label,
				Value: "onboarding:interval:" + iv.Value,
			})
		}
		return []model.Reply{{
			Text:    "Last thing: how often should I nudge you about items that are ready to work on?",
			Choices: choices,
		}}, nil
	}
	return nil, &model.InvalidStateError{Op: "onboarding", Detail: "unknown step " + state.Step}
}

func (w *WizardService) handleOnboarding(ctx context.Context, state *model.ConversationState, ev model.InboundEvent) ([]model.Reply, error) {
	if state.Step == stepInterval {
		return w.handleIntervalChoice(ctx, state, ev)
	}

	if ev.IsChoice() {
		return nil, model.NewValidationError("answer this one in your own words")
	}
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil, model.NewValidationError("I need a few words here")
	}

	ob := state.Onboarding
	if ob == nil || ob.AreaIndex >= len(model.LifeAreas) {
		return nil, &model.InvalidStateError{Op: "onboarding", Detail: "answer arrived with no area pending"}
	}
	area := model.LifeAreas[ob.AreaIndex]
	if ob.Answers == nil {
		ob.Answers = map[model.LifeArea]*model.AreaAnswers{}
	}
	answers := ob.Answers[area]
	if answers == nil {
		answers = &model.AreaAnswers{}
		ob.Answers[area] = answers
	}

	switch state.Step {
	case stepAreaIdeal:
		answers.Ideal = text
		state.Step = stepAreaCurrent
	case stepAreaCurrent:
		answers.Current = text
		state.Step = stepAreaObstacle
	case stepAreaObstacle:
		answers.Obstacle = text
		ob.AreaIndex++
		if ob.AreaIndex < len(model.LifeAreas) {
			state.Step = stepAreaIdeal
			break
		}

		created, err := w.deriveOnboardingGoals(ctx, state.UserID, ob)
		if err != nil {
			return nil, err
		}
		state.Step = stepInterval
		state.Phase = model.PhaseIdle
		if len(created) == 0 {
			return []model.Reply{model.TextReply(
				"That's all six areas. Nothing concrete enough for a goal yet — you can add some later with /onboard_manual.")}, nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "That's all six areas. I've turned your answers into %d starter goals:\n", len(created))
		for _, goal := range created {
			fmt.Fprintf(&b, "  %s  %s\n", goal.HumanID, goal.Title)
		}
		return []model.Reply{model.TextReply(strings.TrimRight(b.String(), "\n"))}, nil
	default:
		return nil, &model.InvalidStateError{Op: "onboarding", Detail: "unknown step " + state.Step}
	}

	state.Phase = model.PhaseIdle
	return nil, nil
}

// deriveOnboardingGoals turns the collected answers into goals: one per area
// with a substantial ideal-state answer, plus an extra "overcome" goal when
// the obstacle answer is long enough to be a project of its own.
func (w *WizardService) deriveOnboardingGoals(ctx context.Context, userID string, ob *model.OnboardingState) ([]*model.Goal, error) {
	var created []*model.Goal
	for _, area := range model.LifeAreas {
		answers := ob.Answers[area]
		if answers == nil {
			continue
		}
		if len([]rune(strings.TrimSpace(answers.Ideal))) < idealAnswerMinRunes {
			continue
		}

		goal, err := w.goals.Create(ctx, userID, truncateTitle(answers.Ideal, 60),
			area, "", "", model.OriginOnboarding)
		if err != nil {
			return nil, err
		}
		created = append(created, goal)

		if len([]rune(strings.TrimSpace(answers.Obstacle))) > obstacleGoalMinRunes {
			extra, err := w.goals.Create(ctx, userID,
				"Overcome: "+truncateTitle(answers.Obstacle, 50),
				area, "", "", model.OriginOnboarding)
			if err != nil {
				return nil, err
			}
			created = append(created, extra)
		}
	}
	return created, nil
}

func (w *WizardService) handleManualOnboarding(ctx context.Context, state *model.ConversationState, ev model.InboundEvent) ([]model.Reply, error) {
	if state.Step == stepInterval {
		return w.handleIntervalChoice(ctx, state, ev)
	}
	if state.Step != stepGoalsText {
		return nil, &model.InvalidStateError{Op: "onboarding_manual", Detail: "unknown step " + state.Step}
	}

	if ev.IsChoice() || strings.TrimSpace(ev.Text) == "" {
		return nil, model.NewValidationError("send your goals as text, one `area: goal` per line")
	}

	type parsedGoal struct {
		area  model.LifeArea
		title string
	}
	var parsed []parsedGoal
	skipped := 0
	for _, line := range strings.Split(ev.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, model.NewValidationError("each line must look like `area: goal`, got %q", truncateTitle(line, 30))
		}
		area := model.LifeArea(strings.ToLower(strings.TrimSpace(line[:idx])))
		if !model.ValidLifeAreas[area] {
			return nil, model.NewValidationError("unknown life area %q; use physical, mental, career, financial, social or leisure", line[:idx])
		}
		title := strings.TrimSpace(line[idx+1:])
		if title == "" {
			skipped++
			continue
		}
		parsed = append(parsed, parsedGoal{area: area, title: title})
	}
	if len(parsed) == 0 {
		return nil, model.NewValidationError("no usable goals in there — one `area: goal` per line")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recorded %d goals:\n", len(parsed))
	for _, pg := range parsed {
		goal, err := w.goals.Create(ctx, state.UserID, truncateTitle(pg.title, 60),
			pg.area, "", "", model.OriginManual)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "  %s  %s\n", goal.HumanID, goal.Title)
	}
	if skipped > 0 {
		fmt.Fprintf(&b, "(%d empty lines skipped)\n", skipped)
	}

	state.Step = stepInterval
	state.Phase = model.PhaseIdle
	return []model.Reply{model.TextReply(strings.TrimRight(b.String(), "\n"))}, nil
}

// handleIntervalChoice closes out both onboarding variants.
func (w *WizardService) handleIntervalChoice(ctx context.Context, state *model.ConversationState, ev model.InboundEvent) ([]model.Reply, error) {
	if !ev.IsChoice() {
		return nil, model.NewValidationError("pick one of the buttons")
	}
	flow, step, val := choiceParts(ev.Choice)
	if flow != "onboarding" || step != "interval" {
		return nil, model.NewValidationError("pick one of the buttons")
	}

	var interval time.Duration
	var label string
	for _, iv := range reminderIntervals {
		if iv.Value == val {
			interval = iv.D
			label = strings.ToLower(iv.Label)
		}
	}
	if interval == 0 {
		return nil, model.NewValidationError("pick one of the buttons")
	}

	if err := w.users.SetReminderInterval(ctx, state.UserID, interval); err != nil {
		return nil, err
	}

	state.Flow = model.FlowNone
	return []model.Reply{model.TextReply(fmt.Sprintf(
		"All set — I'll nudge you %s when items are ready.\n"+
			"Drop me anything on your mind and I'll capture it. /organize sorts your inbox, /status shows the scoreboard.", label))}, nil
}
