package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// WorkshopTopic groups the sessions of a workshop under a name.
// Schedule holds the raw "originales"/"secundarios" payload with the session dates.
type WorkshopTopic struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ActivityID int64              `bson:"actividad_id" json:"actividad_id"`
	Name       string             `bson:"nombre" json:"nombre"`
	Active     *bool              `bson:"activo,omitempty" json:"activo,omitempty"`
	Schedule   interface{}        `bson:"horarios,omitempty" json:"horarios,omitempty"`
}

// IsActive treats topics without an explicit flag as active.
func (t *WorkshopTopic) IsActive() bool {
	return t.Active == nil || *t.Active
}
