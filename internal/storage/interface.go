package storage

import (
	"context"

	"github.com/chaisthra/vibetrack/internal"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.User) error
	GetUserByUsername(ctx context.Context, username string) (*internal.User, error)
	UpdateUser(ctx context.Context, username string, update internal.UserUpdate) (*internal.User, error)
}

type ActivityRepository interface {
	SaveActivity(ctx context.Context, activity *internal.Activity) error
	// ListActivities filters by owner and, when bounds are non-empty, by
	// [start, end) on the fixed-width timestamp strings.
	ListActivities(ctx context.Context, userID, start, end string) ([]internal.Activity, error)
}

type CategoryRepository interface {
	RecordCategoryUse(ctx context.Context, category, userID, contextClue string) (*internal.CounterEntry, error)
	LoadCounters(ctx context.Context) (map[string]*internal.CounterEntry, error)
}

type BackupRepository interface {
	// BackupAll copies the current collections into a timestamped archive
	// location and returns its path.
	BackupAll(ctx context.Context) (string, error)
}
