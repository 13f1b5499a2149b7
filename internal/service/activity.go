package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/llm"
	"github.com/chaisthra/vibetrack/internal/storage"
)

type LogTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type ActivityRequest struct {
	Text      string `json:"text" validate:"required"`
	Timestamp string `json:"timestamp,omitempty"`
}

func ValidateLogTextRequest(req *LogTextRequest) error {
	return validate.Struct(req)
}

func ValidateActivityRequest(req *ActivityRequest) error {
	return validate.Struct(req)
}

// ActivityRecorder bundles the repositories an activity write touches. The
// activity store and counter store are separate collections with no
// transaction spanning them.
type ActivityRecorder struct {
	Activities storage.ActivityRepository
	Categories storage.CategoryRepository
	Categorize llm.Categorizer
	Fallback   string
	Logger     internal.Logger
}

// LogProcessed categorizes the text through the language model, stores the
// activity, and bumps the category counter. A failed model call degrades to
// the fallback category rather than failing the log.
func (r *ActivityRecorder) LogProcessed(ctx context.Context, userID, text, activityType, conversationID string) (*internal.Activity, error) {
	result, err := r.Categorize.Categorize(ctx, text)
	if err != nil {
		r.Logger.Warnf("categorization failed, using fallback: %v", err)
		result = llm.CategoryResult{ProcessedText: text, Category: r.Fallback}
	}

	activity := &internal.Activity{
		ID:             uuid.NewString(),
		UserID:         userID,
		Type:           activityType,
		RawText:        text,
		ProcessedText:  result.ProcessedText,
		Category:       result.Category,
		Timestamp:      internal.FormatTime(time.Now()),
		ConversationID: conversationID,
	}
	if err := r.Activities.SaveActivity(ctx, activity); err != nil {
		return nil, err
	}

	if _, err := r.Categories.RecordCategoryUse(ctx, activity.Category, userID, result.ProcessedText); err != nil {
		// The activity is already persisted; the counter is a running
		// aggregate, so a miss here only skews statistics.
		r.Logger.Errorf("failed to record category use for %q: %v", activity.Category, err)
	}
	return activity, nil
}

// LogRaw stores an uncategorized activity as submitted, defaulting the
// timestamp to now.
func (r *ActivityRecorder) LogRaw(ctx context.Context, userID string, req *ActivityRequest) (*internal.Activity, error) {
	ts := req.Timestamp
	if ts == "" {
		ts = internal.FormatTime(time.Now())
	}
	activity := &internal.Activity{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          internal.ActivityTypeText,
		RawText:       req.Text,
		ProcessedText: req.Text,
		Category:      r.Fallback,
		Timestamp:     ts,
	}
	if err := r.Activities.SaveActivity(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListActivitiesDesc returns the owner's activities newest first.
func ListActivitiesDesc(ctx context.Context, repo storage.ActivityRepository, userID, start, end string) ([]internal.Activity, error) {
	activities, err := repo.ListActivities(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp > activities[j].Timestamp
	})
	return activities, nil
}
