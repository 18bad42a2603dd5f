package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
)

// ActivityService is the lifecycle controller: it owns the legal transitions
// of an activity, invokes the reward engine at each one, and keeps the
// owner's aggregates in step. Every transition runs item + owner updates in
// one atomic unit.
type ActivityService struct {
	stores Stores
	now    nowFunc
}

func NewActivityService(stores Stores) *ActivityService {
	return &ActivityService{stores: stores, now: time.Now}
}

type CaptureResult struct {
	Activity *model.Activity
	Score    int
}

// Capture creates a new item in Captured and credits the capture score.
func (s *ActivityService) Capture(ctx context.Context, userID, text, link string) (*CaptureResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.NewValidationError("nothing to capture")
	}

	score := services.CaptureScore(link != "")
	var activity *model.Activity

	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		user, err := s.stores.Users.Get(ctx, userID)
		if err != nil {
			return err
		}
		ids, err := s.stores.Activities.HumanIDs(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now()
		activity = &model.Activity{
			ActivityID:   uuid.New().String(),
			HumanID:      NextHumanID(ActivityIDPrefix, ids),
			UserID:       userID,
			Status:       model.StatusCaptured,
			RawText:      text,
			Link:         link,
			CapturedAt:   now,
			CaptureScore: score,
			TotalScore:   score,
			UpdatedAt:    now,
		}
		if err := s.stores.Activities.Insert(ctx, activity); err != nil {
			return err
		}

		user.TotalScore += score
		return s.stores.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	utils.TrackScoreAward("capture", score)
	return &CaptureResult{Activity: activity, Score: score}, nil
}

// OrganizeInput carries the classification the organize transition requires;
// estimate, deadline, dependency and the block flag are optional enrichments.
type OrganizeInput struct {
	GoalHumanID     string
	PriorityTag     string
	LifeArea        model.LifeArea
	Horizon         model.Horizon
	ExecutionType   model.ExecutionType
	Category        model.Category
	EstimateMinutes int
	Deadline        time.Time
	DependsOn       string
	MentalBlock     bool
}

func (in *OrganizeInput) validate() error {
	if !model.ValidLifeAreas[in.LifeArea] {
		return model.NewValidationError("unknown life area %q", in.LifeArea)
	}
	if !model.ValidHorizons[in.Horizon] {
		return model.NewValidationError("unknown horizon %q", in.Horizon)
	}
	if !model.ValidExecutionTypes[in.ExecutionType] {
		return model.NewValidationError("unknown execution type %q", in.ExecutionType)
	}
	if !model.ValidCategories[in.Category] {
		return model.NewValidationError("unknown category %q", in.Category)
	}
	if in.EstimateMinutes < 0 {
		return model.NewValidationError("estimate cannot be negative")
	}
	return nil
}

type OrganizeResult struct {
	Activity *model.Activity
	Score    int
}

// Organize classifies a captured item and advances it to Organized.
func (s *ActivityService) Organize(ctx context.Context, userID, ref string, in OrganizeInput) (*OrganizeResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var result OrganizeResult
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		activity, err := s.getActivity(ctx, userID, ref)
		if err != nil {
			return err
		}
		if activity.Status != model.StatusCaptured {
			return &model.InvalidStateError{Op: "organize", Detail: "item is " + string(activity.Status) + ", not captured"}
		}

		if in.GoalHumanID != "" {
			if _, err := s.stores.Goals.GetByHumanID(ctx, userID, in.GoalHumanID); err != nil {
				return err
			}
		}
		if in.DependsOn != "" {
			if _, err := s.stores.Activities.GetByHumanID(ctx, userID, in.DependsOn); err != nil {
				return err
			}
		}

		user, err := s.stores.Users.Get(ctx, userID)
		if err != nil {
			return err
		}

		score := services.OrganizeScore(in.Category, in.Horizon, in.PriorityTag,
			in.GoalHumanID != "", !in.Deadline.IsZero(), in.EstimateMinutes > 0, in.MentalBlock)

		now := s.now()
		activity.GoalHumanID = in.GoalHumanID
		activity.PriorityTag = in.PriorityTag
		activity.LifeArea = in.LifeArea
		activity.Horizon = in.Horizon
		activity.ExecutionType = in.ExecutionType
		activity.Category = in.Category
		activity.EstimateMinutes = in.EstimateMinutes
		activity.Deadline = in.Deadline
		activity.DependsOn = in.DependsOn
		activity.MentalBlock = in.MentalBlock
		activity.OrganizedAt = now
		activity.OrganizeScore = score
		activity.TotalScore += score
		activity.Status = model.StatusOrganized
		activity.UpdatedAt = now
		if err := s.stores.Activities.Save(ctx, activity); err != nil {
			return err
		}

		user.TotalScore += score
		if err := s.stores.Users.Save(ctx, user); err != nil {
			return err
		}

		result = OrganizeResult{Activity: activity, Score: score}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackScoreAward("organize", result.Score)
	return &result, nil
}

// StartFocus opens an execution session on an organized item.
func (s *ActivityService) StartFocus(ctx context.Context, userID, ref string) (*model.Activity, error) {
	activity, err := s.getActivity(ctx, userID, ref)
	if err != nil {
		return nil, err
	}
	if activity.Status != model.StatusOrganized {
		return nil, &model.InvalidStateError{Op: "startFocus", Detail: "item is " + string(activity.Status) + ", not organized"}
	}

	now := s.now()
	activity.FocusStartedAt = now
	activity.Status = model.StatusInProgress
	activity.UpdatedAt = now
	if err := s.stores.Activities.Save(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

type FinishResult struct {
	Activity      *model.Activity
	Score         int
	IsLate        bool
	Gems          int
	ActualMinutes int
}

// FinishFocus closes the active session, computes the done score, and
// advances to Complete or CompleteLate. A late finish also costs vitality.
func (s *ActivityService) FinishFocus(ctx context.Context, userID, ref string) (*FinishResult, error) {
	var result FinishResult
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		activity, err := s.getActivity(ctx, userID, ref)
		if err != nil {
			return err
		}
		if activity.Status != model.StatusInProgress || activity.FocusStartedAt.IsZero() {
			return &model.InvalidStateError{Op: "finishFocus", Detail: "no active focus session"}
		}

		user, err := s.stores.Users.Get(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now()
		actual := int(now.Sub(activity.FocusStartedAt).Minutes())
		if actual < 1 {
			actual = 1
		}

		done := services.DoneScore(activity.OrganizeScore, now, activity.Deadline,
			activity.MentalBlock, actual, activity.EstimateMinutes)

		activity.ActualMinutes = actual
		activity.CompletedAt = now
		activity.DoneScore = done.Score
		activity.TotalScore += done.Score
		activity.UpdatedAt = now
		if done.IsLate {
			activity.Status = model.StatusCompleteLate
		} else {
			activity.Status = model.StatusComplete
		}
		if err := s.stores.Activities.Save(ctx, activity); err != nil {
			return err
		}

		session := &model.FocusSession{
			SessionID:  uuid.New().String(),
			UserID:     userID,
			ActivityID: activity.ActivityID,
			StartedAt:  activity.FocusStartedAt,
			EndedAt:    now,
			Minutes:    actual,
			Outcome:    model.SessionFinished,
		}
		if err := s.stores.Sessions.Insert(ctx, session); err != nil {
			return err
		}

		user.TotalScore += done.Score
		user.Gems += done.Gems
		if done.IsLate {
			user.Vitality -= services.VitalityLatePenalty
			if user.Vitality < 0 {
				user.Vitality = 0
			}
		}
		if err := s.stores.Users.Save(ctx, user); err != nil {
			return err
		}

		result = FinishResult{
			Activity:      activity,
			Score:         done.Score,
			IsLate:        done.IsLate,
			Gems:          done.Gems,
			ActualMinutes: actual,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackScoreAward("done", result.Score)
	return &result, nil
}

type EvaluateResult struct {
	Activity  *model.Activity
	MoodDelta int
	Score     int
}

// Evaluate records the post-completion reflection and credits the evaluate
// score. Legal exactly once, after completion.
func (s *ActivityService) Evaluate(ctx context.Context, userID, ref, feelingBefore, feelingAfter string) (*EvaluateResult, error) {
	var result EvaluateResult
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		activity, err := s.getActivity(ctx, userID, ref)
		if err != nil {
			return err
		}
		if activity.Status != model.StatusComplete && activity.Status != model.StatusCompleteLate {
			return &model.InvalidStateError{Op: "evaluate", Detail: "item is " + string(activity.Status) + ", not completed"}
		}
		if activity.DoneScore == 0 {
			return &model.InvalidStateError{Op: "evaluate", Detail: "item has no done score"}
		}
		if !activity.EvaluatedAt.IsZero() {
			return &model.InvalidStateError{Op: "evaluate", Detail: "item already evaluated"}
		}

		user, err := s.stores.Users.Get(ctx, userID)
		if err != nil {
			return err
		}

		delta := services.MoodDelta(feelingBefore, feelingAfter)
		score := services.EvaluateScore(activity.DoneScore, delta)

		now := s.now()
		activity.FeelingBefore = feelingBefore
		activity.FeelingAfter = feelingAfter
		activity.MoodDelta = delta
		activity.EvaluatedAt = now
		activity.EvaluateScore = score
		activity.TotalScore += score
		activity.UpdatedAt = now
		if err := s.stores.Activities.Save(ctx, activity); err != nil {
			return err
		}

		user.TotalScore += score
		if err := s.stores.Users.Save(ctx, user); err != nil {
			return err
		}

		result = EvaluateResult{Activity: activity, MoodDelta: delta, Score: score}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackScoreAward("evaluate", result.Score)
	return &result, nil
}

// Abandon drops a non-terminal item. No score; an open focus session is
// recorded as abandoned.
func (s *ActivityService) Abandon(ctx context.Context, userID, ref string) (*model.Activity, error) {
	var abandoned *model.Activity
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		activity, err := s.getActivity(ctx, userID, ref)
		if err != nil {
			return err
		}
		if activity.Status.Terminal() {
			return &model.InvalidStateError{Op: "abandon", Detail: "item is already " + string(activity.Status)}
		}

		now := s.now()
		if activity.Status == model.StatusInProgress && !activity.FocusStartedAt.IsZero() {
			session := &model.FocusSession{
				SessionID:  uuid.New().String(),
				UserID:     userID,
				ActivityID: activity.ActivityID,
				StartedAt:  activity.FocusStartedAt,
				EndedAt:    now,
				Minutes:    int(now.Sub(activity.FocusStartedAt).Minutes()),
				Outcome:    model.SessionAbandoned,
			}
			if err := s.stores.Sessions.Insert(ctx, session); err != nil {
				return err
			}
		}

		activity.Status = model.StatusAbandoned
		activity.UpdatedAt = now
		if err := s.stores.Activities.Save(ctx, activity); err != nil {
			return err
		}
		abandoned = activity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return abandoned, nil
}

type SplitResult struct {
	Parent   *model.Activity
	Children []*model.Activity
	Score    int
}

// Split breaks an unstarted item into sub-items. Each child is captured
// fresh (and scored as a capture); the parent is closed out as superseded.
func (s *ActivityService) Split(ctx context.Context, userID, ref string, parts []string) (*SplitResult, error) {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) < 2 {
		return nil, model.NewValidationError("a split needs at least two non-empty parts")
	}

	var result SplitResult
	err := s.stores.Atomic.Atomically(ctx, func(ctx context.Context) error {
		parent, err := s.getActivity(ctx, userID, ref)
		if err != nil {
			return err
		}
		if parent.Status != model.StatusCaptured && parent.Status != model.StatusOrganized {
			return &model.InvalidStateError{Op: "split", Detail: "only unstarted items can be split"}
		}

		user, err := s.stores.Users.Get(ctx, userID)
		if err != nil {
			return err
		}
		ids, err := s.stores.Activities.HumanIDs(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now()
		total := 0
		children := make([]*model.Activity, 0, len(cleaned))
		for _, part := range cleaned {
			humanID := NextHumanID(ActivityIDPrefix, ids)
			ids = append(ids, humanID)

			score := services.CaptureScore(false)
			child := &model.Activity{
				ActivityID:   uuid.New().String(),
				HumanID:      humanID,
				UserID:       userID,
				ParentID:     parent.ActivityID,
				Status:       model.StatusCaptured,
				RawText:      part,
				CapturedAt:   now,
				CaptureScore: score,
				TotalScore:   score,
				UpdatedAt:    now,
			}
			if err := s.stores.Activities.Insert(ctx, child); err != nil {
				return err
			}
			children = append(children, child)
			total += score
		}

		parent.Status = model.StatusAbandoned
		parent.UpdatedAt = now
		if err := s.stores.Activities.Save(ctx, parent); err != nil {
			return err
		}

		user.TotalScore += total
		if err := s.stores.Users.Save(ctx, user); err != nil {
			return err
		}

		result = SplitResult{Parent: parent, Children: children, Score: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.TrackScoreAward("capture", result.Score)
	return &result, nil
}

// ListReady returns organized items waiting for a focus session.
func (s *ActivityService) ListReady(ctx context.Context, userID string) ([]*model.Activity, error) {
	return s.stores.Activities.ListByStatus(ctx, userID, model.StatusOrganized)
}

func (s *ActivityService) ListCaptured(ctx context.Context, userID string) ([]*model.Activity, error) {
	return s.stores.Activities.ListByStatus(ctx, userID, model.StatusCaptured)
}

func (s *ActivityService) ListCompleted(ctx context.Context, userID string) ([]*model.Activity, error) {
	return s.stores.Activities.ListByStatus(ctx, userID, model.StatusComplete, model.StatusCompleteLate)
}

// getActivity resolves either the internal id or the human-readable ACT-NNNN.
func (s *ActivityService) getActivity(ctx context.Context, userID, ref string) (*model.Activity, error) {
	if strings.HasPrefix(ref, ActivityIDPrefix+"-") {
		return s.stores.Activities.GetByHumanID(ctx, userID, ref)
	}
	return s.stores.Activities.Get(ctx, userID, ref)
}
