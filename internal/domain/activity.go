package domain

import (
	"strings"
	"time"
)

// ActivityType is the kind of sellable offering.
type ActivityType string

const (
	TypeProgram      ActivityType = "program"
	TypeWorkshop     ActivityType = "workshop"
	TypeDocument     ActivityType = "document"
	TypeConsultation ActivityType = "consultation"
)

// Category values as stored in the "categoria" field. Older records use the
// English spelling for nutrition, so both are accepted.
const (
	CategoryFitness   = "fitness"
	CategoryNutrition = "nutricion"
)

// Activity is a coaching offering (program, workshop or document) listed in the marketplace.
type Activity struct {
	ID          int64        `bson:"_id" json:"id"`
	CoachID     string       `bson:"coach_id" json:"coach_id"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Type        ActivityType `bson:"type" json:"type"`
	Categoria   string       `bson:"categoria,omitempty" json:"categoria,omitempty"`
	Difficulty  string       `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Price       float64      `bson:"price" json:"price"`
	IsPublic    bool         `bson:"is_public" json:"is_public"`
	Capacity    *int         `bson:"capacity,omitempty" json:"capacity,omitempty"`

	// Objectives were first stored as a comma separated string and later as an array.
	// The repository hands back whichever shape it found; use ObjectiveList to read it.
	Objectives interface{} `bson:"objetivos,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsWorkshop reports whether the activity is a workshop.
func (a *Activity) IsWorkshop() bool {
	return a.Type == TypeWorkshop
}

// IsNutrition reports whether the activity belongs to the nutrition category.
func (a *Activity) IsNutrition() bool {
	switch strings.ToLower(strings.TrimSpace(a.Categoria)) {
	case CategoryNutrition, "nutrition", "nutrición":
		return true
	}
	return false
}

// ObjectiveList flattens the stored objectives into a clean list of labels.
func ObjectiveList(raw interface{}) []string {
	out := []string{}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			add(part)
		}
	case []string:
		for _, s := range v {
			add(s)
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	}
	return out
}

// ActivityMedia holds the storage keys (or legacy absolute URLs) of an activity's cover media.
type ActivityMedia struct {
	ActivityID int64  `bson:"actividad_id" json:"actividad_id"`
	ImageKey   string `bson:"image_key,omitempty" json:"-"`
	VideoKey   string `bson:"video_key,omitempty" json:"-"`
	ImageURL   string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	VideoURL   string `bson:"video_url,omitempty" json:"video_url,omitempty"`
}

// RatingSummary aggregates the surveys left for one activity.
type RatingSummary struct {
	ActivityID   int64   `bson:"_id" json:"activity_id"`
	Average      float64 `bson:"average" json:"average"`
	TotalReviews int     `bson:"total" json:"total"`
}
