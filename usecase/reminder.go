package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/utils"
)

// Notifier pushes an unsolicited message to a user. The events handler's
// transport side implements it.
type Notifier interface {
	Notify(ctx context.Context, userID string, reply model.Reply) error
}

// SweepLocker serializes sweeps across process instances
// (services.ConversationCache implements it on redis SetNX).
type SweepLocker interface {
	AcquireSweepLock(ctx context.Context) (bool, error)
	ReleaseSweepLock(ctx context.Context) error
}

// ReminderService periodically nudges users who have organized items sitting
// ready and whose chosen interval has elapsed.
type ReminderService struct {
	stores   Stores
	wizard   *WizardService
	notifier Notifier
	locker   SweepLocker
	now      nowFunc
}

func NewReminderService(stores Stores, wizard *WizardService, notifier Notifier, locker SweepLocker) *ReminderService {
	return &ReminderService{
		stores:   stores,
		wizard:   wizard,
		notifier: notifier,
		locker:   locker,
		now:      time.Now,
	}
}

// Run sweeps on the given cadence until ctx is cancelled.
func (s *ReminderService) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("reminder sweep failed: %v", err)
			}
		}
	}
}

// Sweep runs one pass over all users. Per-user failures are logged and do not
// stop the pass.
func (s *ReminderService) Sweep(ctx context.Context) error {
	if s.locker != nil {
		ok, err := s.locker.AcquireSweepLock(ctx)
		if err != nil {
			return err
		}
		if !ok {
			// another instance holds the sweep
			return nil
		}
		defer func() {
			if err := s.locker.ReleaseSweepLock(ctx); err != nil {
				log.Printf("releasing sweep lock: %v", err)
			}
		}()
	}

	users, err := s.stores.Users.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := s.sweepUser(ctx, user); err != nil {
			log.Printf("reminding %s: %v", user.UserID, err)
		}
	}
	return nil
}

func (s *ReminderService) sweepUser(ctx context.Context, user *model.User) error {
	interval := user.Settings.ReminderInterval
	if interval <= 0 {
		interval = model.DefaultReminderInterval
	}
	now := s.now()
	if !user.Settings.LastReminderAt.IsZero() && now.Sub(user.Settings.LastReminderAt) < interval {
		return nil
	}

	// a user mid-dialog gets no interruptions
	active, err := s.wizard.Active(ctx, user.UserID)
	if err != nil {
		return err
	}
	if active {
		return nil
	}

	ready, err := s.stores.Activities.ListByStatus(ctx, user.UserID, model.StatusOrganized)
	if err != nil {
		return err
	}
	if len(ready) == 0 {
		return nil
	}

	text := fmt.Sprintf("⏰ %d items are organized and waiting. /app to pick one.", len(ready))
	if len(ready) == 1 {
		text = fmt.Sprintf("⏰ %s «%s» is organized and waiting. /app to start it.",
			ready[0].HumanID, truncateTitle(ready[0].RawText, 40))
	}
	if err := s.notifier.Notify(ctx, user.UserID, model.TextReply(text)); err != nil {
		return err
	}

	user.Settings.LastReminderAt = now
	if err := s.stores.Users.Save(ctx, user); err != nil {
		return err
	}
	utils.TrackReminder()
	return nil
}
