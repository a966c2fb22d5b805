package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlainValueConvertsNestedDocuments(t *testing.T) {
	when := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	oid := primitive.NewObjectID()

	raw := primitive.D{
		{Key: "1", Value: primitive.A{
			primitive.D{{Key: "id", Value: int32(5)}, {Key: "orden", Value: int64(2)}},
			"7",
		}},
		{Key: "meta", Value: primitive.M{"fecha": primitive.NewDateTimeFromTime(when), "ref": oid}},
		{Key: "gone", Value: primitive.Null{}},
	}

	got := plainValue(raw)
	require.Equal(t, map[string]interface{}{
		"1": []interface{}{
			map[string]interface{}{"id": int32(5), "orden": int64(2)},
			"7",
		},
		"meta": map[string]interface{}{"fecha": "2024-01-10T09:00:00Z", "ref": oid.Hex()},
		"gone": nil,
	}, got)
}

func TestPlainValueLeavesScalars(t *testing.T) {
	require.Equal(t, "1,2,3", plainValue("1,2,3"))
	require.Equal(t, 4.5, plainValue(4.5))
	require.Nil(t, plainValue(nil))
}
