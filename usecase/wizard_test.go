package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"main/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardFixture struct {
	*fixture
	wizard *WizardService
	seq    int
}

func newWizardFixture(t *testing.T) *wizardFixture {
	f := newFixture(t)
	wizard := NewWizardService(f.store.stores(), nil, f.users, f.goals, f.activities, f.habits)
	wizard.now = func() time.Time { return f.clock }
	return &wizardFixture{fixture: f, wizard: wizard}
}

func (wf *wizardFixture) text(t *testing.T, msg string) []model.Reply {
	t.Helper()
	wf.seq++
	replies, err := wf.wizard.HandleEvent(context.Background(), model.InboundEvent{
		EventID: fmt.Sprintf("ev-%d", wf.seq),
		UserID:  testUserID,
		Text:    msg,
	})
	require.NoError(t, err)
	return replies
}

func (wf *wizardFixture) choice(t *testing.T, payload string) []model.Reply {
	t.Helper()
	wf.seq++
	replies, err := wf.wizard.HandleEvent(context.Background(), model.InboundEvent{
		EventID: fmt.Sprintf("ev-%d", wf.seq),
		UserID:  testUserID,
		Choice:  payload,
	})
	require.NoError(t, err)
	return replies
}

func replyText(replies []model.Reply) string {
	parts := make([]string, 0, len(replies))
	for _, reply := range replies {
		parts = append(parts, reply.Text)
	}
	return strings.Join(parts, "\n")
}

func (wf *wizardFixture) assertActive(t *testing.T, want bool) {
	t.Helper()
	active, err := wf.wizard.Active(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, want, active)
}

func TestGuidedOnboardingFullScript(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	replies, err := wf.wizard.StartGuidedOnboarding(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Contains(t, replies[1].Text, "[1/6]")
	assert.Contains(t, replies[1].Text, "ideal")
	wf.assertActive(t, true)

	// physical: a real vision and a long obstacle, worth two goals
	replies = wf.text(t, "be able to run a marathon without falling apart")
	assert.Contains(t, replyText(replies), "right now")
	wf.text(t, "couch, mostly")
	replies = wf.text(t, "I never make time for training because work always spills into my evenings")
	assert.Contains(t, replyText(replies), "[2/6]")

	// the remaining five areas: nothing substantial
	for i := 0; i < 5; i++ {
		wf.text(t, "idk")
		wf.text(t, "fine")
		replies = wf.text(t, "none")
	}

	// all areas done: goal summary plus the interval prompt
	joined := replyText(replies)
	assert.Contains(t, joined, "2 starter goals")
	assert.Contains(t, joined, "GOAL-0001")
	assert.Contains(t, joined, "Overcome:")
	require.NotEmpty(t, replies)
	last := replies[len(replies)-1]
	require.Len(t, last.Choices, 3)

	final := wf.choice(t, "onboarding:interval:2h")
	assert.Contains(t, replyText(final), "every 2 hours")
	wf.assertActive(t, false)

	user := wf.user(t)
	assert.Equal(t, 2*time.Hour, user.Settings.ReminderInterval)

	goals, err := wf.goals.List(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, model.AreaPhysical, goals[0].LifeArea)
	assert.Equal(t, model.OriginOnboarding, goals[0].Origin)
}

func TestOnboardingInvalidInputReprompts(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	_, err := wf.wizard.StartGuidedOnboarding(ctx, testUserID)
	require.NoError(t, err)

	// a button press where words are expected does not advance the step
	replies := wf.choice(t, "organize:tags:done")
	joined := replyText(replies)
	assert.Contains(t, joined, "⚠️")
	assert.Contains(t, joined, "[1/6]")

	replies = wf.text(t, "   ")
	assert.Contains(t, replyText(replies), "⚠️")

	// the flow is still on the first question
	replies = wf.text(t, "a strong healthy body")
	assert.Contains(t, replyText(replies), "right now")
}

func TestDuplicateEventIsDropped(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	_, err := wf.wizard.StartGuidedOnboarding(ctx, testUserID)
	require.NoError(t, err)

	ev := model.InboundEvent{
		EventID: "ev-dup",
		UserID:  testUserID,
		Text:    "be able to run a marathon",
	}
	first, err := wf.wizard.HandleEvent(ctx, ev)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := wf.wizard.HandleEvent(ctx, ev)
	require.NoError(t, err)
	assert.Empty(t, second, "a redelivered event must not advance the flow")
}

func TestStartIsDebouncedWhilePromptOutstanding(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	first, err := wf.wizard.StartGuidedOnboarding(ctx, testUserID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	again, err := wf.wizard.StartGuidedOnboarding(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, again, "a retried start must not repeat the prompt")

	// a different flow gets told to finish first
	other, err := wf.wizard.StartHabitCreation(ctx, testUserID)
	require.NoError(t, err)
	assert.Contains(t, replyText(other), "already in a dialog")
}

func TestManualOnboarding(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	replies, err := wf.wizard.StartManualOnboarding(ctx, testUserID)
	require.NoError(t, err)
	assert.Contains(t, replyText(replies), "area: goal")

	replies = wf.text(t, "just some goals please")
	assert.Contains(t, replyText(replies), "⚠️")

	replies = wf.text(t, "career: ship the side project\nphysical: run a 10k\nmental:")
	joined := replyText(replies)
	assert.Contains(t, joined, "Recorded 2 goals")
	assert.Contains(t, joined, "1 empty lines skipped")

	wf.choice(t, "onboarding:interval:24h")
	wf.assertActive(t, false)

	goals, err := wf.goals.List(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, model.OriginManual, goals[0].Origin)
	assert.Equal(t, 24*time.Hour, wf.user(t).Settings.ReminderInterval)
}

func TestOrganizeFlowFullScript(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	_, err := wf.goals.Create(ctx, testUserID, "ship the side project",
		model.AreaCareer, "", "", model.OriginManual)
	require.NoError(t, err)
	_, err = wf.activities.Capture(ctx, testUserID, "write the landing page", "")
	require.NoError(t, err)
	wf.advance(time.Minute)
	_, err = wf.activities.Capture(ctx, testUserID, "water the plants", "")
	require.NoError(t, err)

	replies, err := wf.wizard.StartOrganize(ctx, testUserID)
	require.NoError(t, err)
	joined := replyText(replies)
	assert.Contains(t, joined, "2 items")
	assert.Contains(t, joined, "ACT-0001")
	assert.Contains(t, joined, "1. GOAL-0001")

	// first item: linked to the goal, importance marked high
	replies = wf.text(t, "1")
	require.NotEmpty(t, replies)
	require.Len(t, replies[len(replies)-1].Choices, 6) // five dimensions plus Done

	replies = wf.choice(t, "organize:tags:importance")
	require.NotEmpty(t, replies)
	assert.Contains(t, choiceLabels(replies[len(replies)-1].Choices), "Importance ✓")

	wf.choice(t, "organize:tags:done")
	wf.choice(t, "organize:area:career")
	wf.choice(t, "organize:horizon:today")
	wf.choice(t, "organize:exec:deep_work")
	replies = wf.choice(t, "organize:category:main_quest")
	joined = replyText(replies)
	// 10*2.0 base + 5 horizon + 2 tag + 3 goal
	assert.Contains(t, joined, "✅ ACT-0001 organized, +30 points.")
	assert.Contains(t, joined, "ACT-0002")

	// second item: no goal, no tags
	wf.text(t, "skip")
	wf.choice(t, "organize:tags:done")
	wf.choice(t, "organize:area:leisure")
	wf.choice(t, "organize:horizon:someday")
	wf.choice(t, "organize:exec:errand")
	replies = wf.choice(t, "organize:category:void_filler")
	assert.Contains(t, replyText(replies), "whole inbox")
	wf.assertActive(t, false)

	ready, err := wf.activities.ListReady(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, ready, 2)
	assert.Equal(t, "GOAL-0001", ready[0].GoalHumanID)
	assert.Equal(t, "Iicup", ready[0].PriorityTag)
	assert.Equal(t, "iicup", ready[1].PriorityTag)
}

func TestOrganizeWithEmptyInbox(t *testing.T) {
	wf := newWizardFixture(t)

	replies, err := wf.wizard.StartOrganize(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Contains(t, replyText(replies), "Inbox zero")
	wf.assertActive(t, false)
}

func TestOrganizeSkipsItemThatMovedOn(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	captured, err := wf.activities.Capture(ctx, testUserID, "book the flights", "")
	require.NoError(t, err)

	_, err = wf.wizard.StartOrganize(ctx, testUserID)
	require.NoError(t, err)

	// the item gets organized out-of-band while the dialog is open
	_, err = wf.activities.Organize(ctx, testUserID, captured.Activity.HumanID, OrganizeInput{
		PriorityTag:   "iicup",
		LifeArea:      model.AreaLeisure,
		Horizon:       model.HorizonMonth,
		ExecutionType: model.ExecErrand,
		Category:      model.CategorySideQuest,
	})
	require.NoError(t, err)

	wf.text(t, "skip")
	wf.choice(t, "organize:tags:done")
	wf.choice(t, "organize:area:leisure")
	wf.choice(t, "organize:horizon:month")
	wf.choice(t, "organize:exec:errand")
	replies := wf.choice(t, "organize:category:side_quest")
	assert.Contains(t, replyText(replies), "skipping")
	wf.assertActive(t, false)
}

func TestHabitCreationFlow(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	replies, err := wf.wizard.StartHabitCreation(ctx, testUserID)
	require.NoError(t, err)
	assert.Contains(t, replyText(replies), "habit")

	replies = wf.text(t, "daily movement")
	require.NotEmpty(t, replies)
	require.Len(t, replies[len(replies)-1].Choices, 6)

	wf.choice(t, "habit:area:physical")

	replies = wf.text(t, "10 min walk / 30 min walk")
	assert.Contains(t, replyText(replies), "⚠️")

	replies = wf.text(t, "10 min walk / 30 min walk / 5k run / 10k run")
	assert.Contains(t, replyText(replies), "HAB-0001")
	wf.assertActive(t, false)

	habits, err := wf.habits.List(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "daily movement", habits[0].Title)
	assert.Equal(t, model.AreaPhysical, habits[0].LifeArea)
	assert.Equal(t, "5k run", habits[0].Tiers.Hard)
}

func TestWizardResumesFromPersistedState(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	_, err := wf.wizard.StartHabitCreation(ctx, testUserID)
	require.NoError(t, err)
	wf.text(t, "daily movement")

	// a fresh service instance picks the dialog up from the store
	resumed := NewWizardService(wf.store.stores(), nil, wf.users, wf.goals, wf.activities, wf.habits)
	replies, err := resumed.HandleEvent(ctx, model.InboundEvent{
		EventID: "ev-resume",
		UserID:  testUserID,
		Choice:  "habit:area:mental",
	})
	require.NoError(t, err)
	assert.Contains(t, replyText(replies), "tiers")
}

func TestCancel(t *testing.T) {
	wf := newWizardFixture(t)
	ctx := context.Background()

	replies, err := wf.wizard.Cancel(ctx, testUserID)
	require.NoError(t, err)
	assert.Contains(t, replyText(replies), "Nothing to cancel")

	_, err = wf.wizard.StartHabitCreation(ctx, testUserID)
	require.NoError(t, err)
	wf.assertActive(t, true)

	replies, err = wf.wizard.Cancel(ctx, testUserID)
	require.NoError(t, err)
	assert.Contains(t, replyText(replies), "cancelled")
	wf.assertActive(t, false)
}

func TestHandleEventWithoutActiveFlow(t *testing.T) {
	wf := newWizardFixture(t)

	_, err := wf.wizard.HandleEvent(context.Background(), model.InboundEvent{
		EventID: "ev-1",
		UserID:  testUserID,
		Text:    "hello",
	})
	assert.True(t, model.IsInvalidState(err))
}

func choiceLabels(choices []model.Choice) []string {
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	return labels
}
