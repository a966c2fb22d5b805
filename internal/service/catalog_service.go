package service

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/observability"
	"alcyxob/coaching-marketplace/internal/repository"
	"alcyxob/coaching-marketplace/internal/stats"
	"alcyxob/coaching-marketplace/internal/storage"
	"context"
	"log/slog"
	"time"
)

// MediaLinks are client-usable URLs for an activity's cover media.
type MediaLinks struct {
	ImageURL string
	VideoURL string
}

// ActivityListing is one search result with everything the listing card shows.
type ActivityListing struct {
	Activity   domain.Activity
	Objectives []string
	Media      *MediaLinks
	Coach      *domain.Coach // AvatarURL is already linked
	Rating     *domain.RatingSummary
	Stats      stats.Statistics
}

// StatsRunner computes listing statistics for a batch of activities.
type StatsRunner interface {
	Run(ctx context.Context, activities []domain.Activity) []stats.Result
}

// FinalityChecker tells whether a workshop is over.
type FinalityChecker interface {
	IsFinished(ctx context.Context, activityID int64) bool
}

// --- Service Interface ---
type CatalogService interface {
	Search(ctx context.Context, filter repository.ActivityFilter) ([]ActivityListing, error)
}

// --- Service Implementation ---

type catalogService struct {
	activityRepo repository.ActivityRepository
	coachRepo    repository.CoachRepository
	mediaRepo    repository.MediaRepository
	reviewRepo   repository.ReviewRepository
	statsRunner  StatsRunner
	finality     FinalityChecker
	fileStorage  storage.FileStorage
	urlExpiry    time.Duration
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(
	activityRepo repository.ActivityRepository,
	coachRepo repository.CoachRepository,
	mediaRepo repository.MediaRepository,
	reviewRepo repository.ReviewRepository,
	statsRunner StatsRunner,
	finality FinalityChecker,
	fileStorage storage.FileStorage,
	urlExpiry time.Duration,
) CatalogService {
	return &catalogService{
		activityRepo: activityRepo,
		coachRepo:    coachRepo,
		mediaRepo:    mediaRepo,
		reviewRepo:   reviewRepo,
		statsRunner:  statsRunner,
		finality:     finality,
		fileStorage:  fileStorage,
		urlExpiry:    urlExpiry,
	}
}

// Search lists matching activities. Only the activity query itself can fail the
// request; statistics and enrichment degrade per activity.
func (s *catalogService) Search(ctx context.Context, filter repository.ActivityFilter) ([]ActivityListing, error) {
	found, err := s.activityRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		if a.IsWorkshop() && s.finality.IsFinished(ctx, a.ID) {
			observability.FinishedWorkshops.Inc()
			continue
		}
		visible = append(visible, a)
	}
	if len(visible) == 0 {
		return []ActivityListing{}, nil
	}

	results := s.statsRunner.Run(ctx, visible)

	ids := make([]int64, len(visible))
	coachIDs := make([]string, 0, len(visible))
	seenCoach := map[string]struct{}{}
	for i, a := range visible {
		ids[i] = a.ID
		if _, ok := seenCoach[a.CoachID]; !ok && a.CoachID != "" {
			seenCoach[a.CoachID] = struct{}{}
			coachIDs = append(coachIDs, a.CoachID)
		}
	}
	coaches := s.coaches(ctx, coachIDs)
	media := s.media(ctx, ids)
	ratings := s.ratings(ctx, ids)

	listings := make([]ActivityListing, len(visible))
	for i, a := range visible {
		l := ActivityListing{
			Activity:   a,
			Objectives: domain.ObjectiveList(a.Objectives),
			Stats:      results[i].Value(),
		}
		if c, ok := coaches[a.CoachID]; ok {
			l.Coach = &c
		}
		if m, ok := media[a.ID]; ok {
			l.Media = &m
		}
		if r, ok := ratings[a.ID]; ok {
			l.Rating = &r
		}
		listings[i] = l
	}
	return listings, nil
}

func (s *catalogService) coaches(ctx context.Context, ids []string) map[string]domain.Coach {
	coaches, err := s.coachRepo.GetByIDs(ctx, ids)
	if err != nil {
		slog.WarnContext(ctx, "coach lookup failed, listing without coach details", slog.String("error", err.Error()))
		return nil
	}
	for id, c := range coaches {
		key := c.AvatarKey
		if key == "" {
			key = c.AvatarURL
		}
		c.AvatarURL = s.link(ctx, key)
		coaches[id] = c
	}
	return coaches
}

func (s *catalogService) media(ctx context.Context, ids []int64) map[int64]MediaLinks {
	stored, err := s.mediaRepo.GetByActivityIDs(ctx, ids)
	if err != nil {
		slog.WarnContext(ctx, "media lookup failed, listing without media", slog.String("error", err.Error()))
		return nil
	}
	out := make(map[int64]MediaLinks, len(stored))
	for id, m := range stored {
		out[id] = MediaLinks{
			ImageURL: s.link(ctx, firstNonEmpty(m.ImageKey, m.ImageURL)),
			VideoURL: s.link(ctx, firstNonEmpty(m.VideoKey, m.VideoURL)),
		}
	}
	return out
}

func (s *catalogService) ratings(ctx context.Context, ids []int64) map[int64]domain.RatingSummary {
	ratings, err := s.reviewRepo.SummarizeByActivityIDs(ctx, ids)
	if err != nil {
		slog.WarnContext(ctx, "rating aggregation failed, listing without ratings", slog.String("error", err.Error()))
		return nil
	}
	return ratings
}

// link turns a stored media value into a URL. Absolute URLs are kept as stored.
func (s *catalogService) link(ctx context.Context, value string) string {
	if value == "" || storage.IsAbsoluteURL(value) {
		return value
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, value, s.urlExpiry)
	if err != nil {
		slog.WarnContext(ctx, "failed to presign media URL",
			slog.String("key", value),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return url
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
