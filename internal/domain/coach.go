package domain

// Coach is the public profile of the coach who sells activities.
type Coach struct {
	ID             string  `bson:"_id" json:"id"`
	FullName       string  `bson:"full_name" json:"full_name"`
	AvatarKey      string  `bson:"avatar_key,omitempty" json:"-"`
	AvatarURL      string  `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Specialization string  `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Rating         float64 `bson:"rating" json:"rating"`
	TotalReviews   int     `bson:"total_reviews" json:"total_reviews"`
}
