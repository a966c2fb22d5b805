// Package memory is an in-process record store for local development and tests.
// It honours the same contracts as the MongoDB repositories.
package memory

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection in memory.
type Store struct {
	mu sync.RWMutex

	activities map[int64]domain.Activity
	coaches    map[string]domain.Coach
	media      map[int64]domain.ActivityMedia
	surveys    map[int64][]float64
	plans      map[domain.PlanKind][]domain.WeeklyPlan
	periods    map[int64]domain.PeriodsRecord
	exercises  map[int64]domain.CatalogEntity
	plates     map[int64]domain.CatalogEntity
	topics     map[int64][]domain.WorkshopTopic
	users      map[primitive.ObjectID]domain.User

	// failAll makes every read fail; failActivity fails reads scoped to one activity.
	failAll      error
	failActivity map[int64]error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		activities:   map[int64]domain.Activity{},
		coaches:      map[string]domain.Coach{},
		media:        map[int64]domain.ActivityMedia{},
		surveys:      map[int64][]float64{},
		plans:        map[domain.PlanKind][]domain.WeeklyPlan{},
		periods:      map[int64]domain.PeriodsRecord{},
		exercises:    map[int64]domain.CatalogEntity{},
		plates:       map[int64]domain.CatalogEntity{},
		topics:       map[int64][]domain.WorkshopTopic{},
		users:        map[primitive.ObjectID]domain.User{},
		failActivity: map[int64]error{},
	}
}

// --- Seeding ---

func (s *Store) AddActivity(a domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
		a.UpdatedAt = a.CreatedAt
	}
	s.activities[a.ID] = a
}

func (s *Store) AddCoach(c domain.Coach) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coaches[c.ID] = c
}

func (s *Store) AddMedia(m domain.ActivityMedia) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[m.ActivityID] = m
}

func (s *Store) AddSurvey(activityID int64, rating float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[activityID] = append(s.surveys[activityID], rating)
}

func (s *Store) AddWeeklyPlan(kind domain.PlanKind, p domain.WeeklyPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.plans[kind] = append(s.plans[kind], p)
}

func (s *Store) SetPeriods(activityID int64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.periods[activityID] = domain.PeriodsRecord{ActivityID: activityID, Count: count}
}

func (s *Store) AddExercise(e domain.CatalogEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises[e.ID] = e
}

func (s *Store) AddPlate(e domain.CatalogEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plates[e.ID] = e
}

func (s *Store) AddTopic(t domain.WorkshopTopic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.topics[t.ActivityID] = append(s.topics[t.ActivityID], t)
}

// FailWith makes every subsequent read return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = err
}

// FailActivity makes reads scoped to one activity return err.
func (s *Store) FailActivity(activityID int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failActivity[activityID] = err
}

func (s *Store) check(activityID int64) error {
	if s.failAll != nil {
		return s.failAll
	}
	return s.failActivity[activityID]
}

// --- Repository views ---

func (s *Store) Activities() repository.ActivityRepository { return activityRepo{s} }
func (s *Store) Coaches() repository.CoachRepository       { return coachRepo{s} }
func (s *Store) Media() repository.MediaRepository         { return mediaRepo{s} }
func (s *Store) Reviews() repository.ReviewRepository      { return reviewRepo{s} }
func (s *Store) Schedules() repository.ScheduleRepository  { return scheduleRepo{s} }
func (s *Store) Workshops() repository.WorkshopRepository  { return workshopRepo{s} }
func (s *Store) Users() repository.UserRepository          { return userRepo{s} }

func (s *Store) Exercises() repository.CatalogEntityRepository {
	return entityRepo{s: s, pick: func(st *Store) map[int64]domain.CatalogEntity { return st.exercises }}
}

func (s *Store) Plates() repository.CatalogEntityRepository {
	return entityRepo{s: s, pick: func(st *Store) map[int64]domain.CatalogEntity { return st.plates }}
}

type activityRepo struct{ s *Store }

func (r activityRepo) GetByID(_ context.Context, id int64) (*domain.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(id); err != nil {
		return nil, err
	}
	a, ok := r.s.activities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r activityRepo) Search(_ context.Context, f repository.ActivityFilter) ([]domain.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failAll != nil {
		return nil, r.s.failAll
	}
	term := strings.ToLower(strings.TrimSpace(f.Term))
	out := []domain.Activity{}
	for _, a := range r.s.activities {
		switch {
		case f.Type != "" && a.Type != f.Type:
			continue
		case !f.IncludeConsultations && a.Type == domain.TypeConsultation:
			continue
		case f.Difficulty != "" && a.Difficulty != f.Difficulty:
			continue
		case f.CoachID != "" && a.CoachID != f.CoachID:
			continue
		case term != "" && !strings.Contains(strings.ToLower(a.Title+" "+a.Description), term):
			continue
		}
		out = append(out, a)
	}
	// newest first, like the MongoDB repository
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type coachRepo struct{ s *Store }

func (r coachRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Coach, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failAll != nil {
		return nil, r.s.failAll
	}
	out := make(map[string]domain.Coach, len(ids))
	for _, id := range ids {
		if c, ok := r.s.coaches[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

type mediaRepo struct{ s *Store }

func (r mediaRepo) GetByActivityIDs(_ context.Context, ids []int64) (map[int64]domain.ActivityMedia, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failAll != nil {
		return nil, r.s.failAll
	}
	out := make(map[int64]domain.ActivityMedia, len(ids))
	for _, id := range ids {
		if m, ok := r.s.media[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) SummarizeByActivityIDs(_ context.Context, ids []int64) (map[int64]domain.RatingSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failAll != nil {
		return nil, r.s.failAll
	}
	out := make(map[int64]domain.RatingSummary, len(ids))
	for _, id := range ids {
		ratings := r.s.surveys[id]
		if len(ratings) == 0 {
			continue
		}
		var sum float64
		for _, v := range ratings {
			sum += v
		}
		out[id] = domain.RatingSummary{ActivityID: id, Average: sum / float64(len(ratings)), TotalReviews: len(ratings)}
	}
	return out, nil
}

type scheduleRepo struct{ s *Store }

func (r scheduleRepo) GetWeeklyPlans(_ context.Context, kind domain.PlanKind, activityID int64) ([]domain.WeeklyPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(activityID); err != nil {
		return nil, err
	}
	out := []domain.WeeklyPlan{}
	for _, p := range r.s.plans[kind] {
		if p.ActivityID == activityID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (r scheduleRepo) GetPeriods(_ context.Context, activityID int64) (*domain.PeriodsRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(activityID); err != nil {
		return nil, err
	}
	rec, ok := r.s.periods[activityID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

type entityRepo struct {
	s    *Store
	pick func(*Store) map[int64]domain.CatalogEntity
}

func (r entityRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.CatalogEntity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.failAll != nil {
		return nil, r.s.failAll
	}
	all := r.pick(r.s)
	out := []domain.CatalogEntity{}
	for _, id := range ids {
		if e, ok := all[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r entityRepo) GetLinkedByIDs(ctx context.Context, activityID int64, ids []int64) ([]domain.CatalogEntity, error) {
	candidates, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := []domain.CatalogEntity{}
	for _, e := range candidates {
		if mayBelong(e, activityID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r entityRepo) ListLinked(_ context.Context, activityID int64) ([]domain.CatalogEntity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(activityID); err != nil {
		return nil, err
	}
	out := []domain.CatalogEntity{}
	for _, e := range r.pick(r.s) {
		if mayBelong(e, activityID) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// mayBelong mirrors the MongoDB filter: the key exists in a document map,
// or the map is a string that only the caller can decode.
func mayBelong(e domain.CatalogEntity, activityID int64) bool {
	switch m := e.ActivityMap.(type) {
	case string:
		return true
	case map[string]interface{}:
		_, ok := m[strconv.FormatInt(activityID, 10)]
		return ok
	}
	return false
}

type workshopRepo struct{ s *Store }

func (r workshopRepo) GetTopics(_ context.Context, activityID int64) ([]domain.WorkshopTopic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.check(activityID); err != nil {
		return nil, err
	}
	out := make([]domain.WorkshopTopic, len(r.s.topics[activityID]))
	copy(out, r.s.topics[activityID])
	return out, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
