package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	sent map[string][]model.Reply
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: map[string][]model.Reply{}}
}

func (n *recordingNotifier) Notify(_ context.Context, userID string, reply model.Reply) error {
	n.sent[userID] = append(n.sent[userID], reply)
	return nil
}

func newReminderFixture(t *testing.T) (*wizardFixture, *ReminderService, *recordingNotifier) {
	wf := newWizardFixture(t)
	notifier := newRecordingNotifier()
	reminders := NewReminderService(wf.store.stores(), wf.wizard, notifier, nil)
	reminders.now = func() time.Time { return wf.clock }
	return wf, reminders, notifier
}

func organizeOne(t *testing.T, wf *wizardFixture) {
	t.Helper()
	ctx := context.Background()
	captured, err := wf.activities.Capture(ctx, testUserID, "stretch for ten minutes", "")
	require.NoError(t, err)
	_, err = wf.activities.Organize(ctx, testUserID, captured.Activity.HumanID, OrganizeInput{
		PriorityTag:   "iicup",
		LifeArea:      model.AreaPhysical,
		Horizon:       model.HorizonToday,
		ExecutionType: model.ExecErrand,
		Category:      model.CategoryMainten,
	})
	require.NoError(t, err)
}

func TestSweepRemindsWhenReadyItemsWait(t *testing.T) {
	wf, reminders, notifier := newReminderFixture(t)
	ctx := context.Background()

	organizeOne(t, wf)
	require.NoError(t, reminders.Sweep(ctx))

	require.Len(t, notifier.sent[testUserID], 1)
	assert.Contains(t, notifier.sent[testUserID][0].Text, "ACT-0001")

	// within the interval nothing more goes out
	wf.advance(time.Hour)
	require.NoError(t, reminders.Sweep(ctx))
	assert.Len(t, notifier.sent[testUserID], 1)

	// past the default four hours the nudge repeats
	wf.advance(4 * time.Hour)
	require.NoError(t, reminders.Sweep(ctx))
	assert.Len(t, notifier.sent[testUserID], 2)
}

func TestSweepSkipsUsersWithNothingReady(t *testing.T) {
	wf, reminders, notifier := newReminderFixture(t)
	ctx := context.Background()

	// a captured-only inbox does not qualify
	_, err := wf.activities.Capture(ctx, testUserID, "just a thought", "")
	require.NoError(t, err)

	require.NoError(t, reminders.Sweep(ctx))
	assert.Empty(t, notifier.sent)
}

func TestSweepDoesNotInterruptDialogs(t *testing.T) {
	wf, reminders, notifier := newReminderFixture(t)
	ctx := context.Background()

	organizeOne(t, wf)
	_, err := wf.wizard.StartHabitCreation(ctx, testUserID)
	require.NoError(t, err)

	require.NoError(t, reminders.Sweep(ctx))
	assert.Empty(t, notifier.sent)

	// once the dialog is gone the reminder fires
	_, err = wf.wizard.Cancel(ctx, testUserID)
	require.NoError(t, err)
	require.NoError(t, reminders.Sweep(ctx))
	assert.Len(t, notifier.sent[testUserID], 1)
}
