package schemas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaWidths(t *testing.T) {
	assert.Len(t, Headers(MatchFields), 41)
	assert.Len(t, Headers(PitFields), 19)
	assert.Equal(t, 19, PitPhotoColumn)
	assert.Equal(t, "Robot Photo", PitFields[PitPhotoColumn-1].Header)
}

func TestRowDefaults(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cells := Row(PitFields, Record{}, ts)

	require.Len(t, cells, len(PitFields))
	assert.Equal(t, "2026-03-01T12:00:00Z", cells[0])
	for i, spec := range PitFields {
		switch spec.Kind {
		case KindNumber:
			assert.Equal(t, 0, cells[i], spec.Header)
		case KindString:
			if spec.Default != nil {
				assert.Equal(t, spec.Default, cells[i], spec.Header)
			} else {
				assert.Equal(t, "", cells[i], spec.Header)
			}
		}
	}
}

func TestRowYesNoRendering(t *testing.T) {
	ts := time.Now()
	rec := Record{
		"fuelNeutralZone": true,
		"fuelOutpost":     false,
		"fuelDepot":       float64(1), // truthy number
		"fuelFloor":       "",         // falsy string
	}
	cells := Row(MatchFields, rec, ts)

	byHeader := map[string]any{}
	for i, spec := range MatchFields {
		byHeader[spec.Header] = cells[i]
	}
	assert.Equal(t, "Yes", byHeader["Auto - Fuel From Neutral Zone"])
	assert.Equal(t, "No", byHeader["Auto - Fuel From Outpost"])
	assert.Equal(t, "Yes", byHeader["Auto - Fuel From Depot"])
	assert.Equal(t, "No", byHeader["Auto - Fuel From Floor"])
	// Omitted flags render as "No".
	assert.Equal(t, "No", byHeader["Over Bump"])
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(float64(0)))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy("0")) // non-empty strings are truthy, as in the forms
	assert.True(t, Truthy(float64(3)))
}

func TestRecordStr(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"teamNumber":254,"scoutName":"A.","ratio":1.5}`))
	require.NoError(t, err)
	assert.Equal(t, "254", rec.Str("teamNumber"))
	assert.Equal(t, "A.", rec.Str("scoutName"))
	assert.Equal(t, "1.5", rec.Str("ratio"))
	assert.Equal(t, "", rec.Str("missing"))
}

func TestParseRecordRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`null`, `[1,2]`, `"hi"`, `42`, `{bad`} {
		_, err := ParseRecord([]byte(raw))
		assert.Error(t, err, raw)
	}
}
