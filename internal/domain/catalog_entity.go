// internal/domain/catalog_entity.go
package domain

// CatalogEntity is an exercise (fitness) or a plate (nutrition) referenced by id from day cells.
// The same record can be shared by several activities; ActivityMap carries the per-activity
// active flags and is stored either as a document or as a JSON encoded string.
type CatalogEntity struct {
	ID          int64       `bson:"_id" json:"id"`
	Name        string      `bson:"nombre" json:"nombre"`
	Type        string      `bson:"tipo,omitempty" json:"tipo,omitempty"`
	Description string      `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	VideoURL    string      `bson:"video_url,omitempty" json:"video_url,omitempty"`
	ActivityMap interface{} `bson:"activity_id,omitempty" json:"-"`
	IsActive    *bool       `bson:"is_active,omitempty" json:"is_active,omitempty"`

	// Legacy rows carry the slot they were planned in.
	Week   *int `bson:"semana,omitempty" json:"semana,omitempty"`
	Day    *int `bson:"dia,omitempty" json:"dia,omitempty"`
	Period *int `bson:"periodo,omitempty" json:"periodo,omitempty"`
}
