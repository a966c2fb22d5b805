package repository

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ActivityFilter narrows a marketplace search. Empty fields are ignored.
type ActivityFilter struct {
	Term       string
	Type       domain.ActivityType
	Difficulty string
	CoachID    string
	// IncludeConsultations keeps consultation activities in the result.
	// Searches exclude them unless the caller asked for them explicitly.
	IncludeConsultations bool
}

// UserRepository stores sign-in accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ActivityRepository reads marketplace activities.
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
	Search(ctx context.Context, filter ActivityFilter) ([]domain.Activity, error)
}

// CoachRepository reads coach profiles. Unknown ids are simply absent from the map.
type CoachRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Coach, error)
}

// MediaRepository reads activity cover media.
type MediaRepository interface {
	GetByActivityIDs(ctx context.Context, ids []int64) (map[int64]domain.ActivityMedia, error)
}

// ReviewRepository aggregates activity surveys.
type ReviewRepository interface {
	SummarizeByActivityIDs(ctx context.Context, ids []int64) (map[int64]domain.RatingSummary, error)
}

// ScheduleRepository reads weekly plans and their period multipliers.
type ScheduleRepository interface {
	// GetWeeklyPlans returns the plan records of an activity ordered by week number.
	GetWeeklyPlans(ctx context.Context, kind domain.PlanKind, activityID int64) ([]domain.WeeklyPlan, error)
	// GetPeriods returns ErrNotFound when the activity has no periods record.
	GetPeriods(ctx context.Context, activityID int64) (*domain.PeriodsRecord, error)
}

// CatalogEntityRepository reads exercise or plate records.
type CatalogEntityRepository interface {
	// GetByIDs returns the records with the given ids, in no particular order.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.CatalogEntity, error)
	// GetLinkedByIDs returns records with the given ids that may belong to the activity.
	// Records whose activity map is string-encoded are returned too; callers must
	// decode the map to confirm membership.
	GetLinkedByIDs(ctx context.Context, activityID int64, ids []int64) ([]domain.CatalogEntity, error)
	// ListLinked returns every record that may belong to the activity, with the same caveat.
	ListLinked(ctx context.Context, activityID int64) ([]domain.CatalogEntity, error)
}

// WorkshopRepository reads workshop topics.
type WorkshopRepository interface {
	GetTopics(ctx context.Context, activityID int64) ([]domain.WorkshopTopic, error)
}
