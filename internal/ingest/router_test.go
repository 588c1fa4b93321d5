package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scouthook/internal/config"
	"scouthook/internal/sheet"
	"scouthook/internal/writer"
)

type fakePhotos struct{}

func (fakePhotos) PutImage(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	return "http://photos.local/bucket/photos/" + name, nil
}

func newRouter(t *testing.T) (*Router, *sheet.Memory) {
	t.Helper()
	mem := sheet.NewMemory()
	log := zap.NewNop()
	return &Router{
		AllowedCodes: []string{"knights"},
		Match:        &writer.Match{Sheets: mem, Sheet: config.DefaultMatchSheet, Log: log},
		Pit:          &writer.Pit{Sheets: mem, Photos: fakePhotos{}, Sheet: config.DefaultPitSheet, Log: log},
		Log:          log,
	}, mem
}

func rowCount(t *testing.T, mem *sheet.Memory, name string) int64 {
	t.Helper()
	st, err := mem.Stats(context.Background(), name)
	require.NoError(t, err)
	return st.RowCount
}

func TestHandleMatchSuccess(t *testing.T) {
	rt, mem := newRouter(t)

	body := `{"teamCode":"knights","scoutingType":"MATCH","matchNumber":12,"teamNumber":254,"studentName":"A. Scout","autoTower":"L1","autoTowerPoints":15}`
	resp := rt.Handle(context.Background(), Input{Body: []byte(body)})

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Match data recorded successfully", resp.Message)
	assert.Equal(t, float64(12), resp.MatchNumber)
	assert.Equal(t, float64(254), resp.TeamNumber)
	assert.Equal(t, "A. Scout", resp.ScoutName)

	assert.Equal(t, int64(2), rowCount(t, mem, config.DefaultMatchSheet))
	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultPitSheet))
}

func TestHandleInvalidTeamCode(t *testing.T) {
	rt, mem := newRouter(t)

	for _, body := range []string{
		`{"teamCode":"intruder","scoutingType":"MATCH","matchNumber":12}`,
		`{"scoutingType":"PIT","teamNumber":254}`,
	} {
		resp := rt.Handle(context.Background(), Input{Body: []byte(body)})
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "Invalid team code", resp.Message)
	}

	// Rejected submissions must leave no trace in either sheet.
	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultMatchSheet))
	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultPitSheet))
}

func TestHandleKindDefaultsToMatch(t *testing.T) {
	rt, mem := newRouter(t)

	for _, body := range []string{
		`{"teamCode":"knights","matchNumber":1}`,                          // kind absent
		`{"teamCode":"knights","scoutingType":"banana","matchNumber":2}`,  // unrecognized kind
		`{"teamCode":"knights","scoutingType":"pit","matchNumber":3}`,     // wrong case is not PIT
	} {
		resp := rt.Handle(context.Background(), Input{Body: []byte(body)})
		require.Equal(t, "success", resp.Status, body)
		assert.Equal(t, "Match data recorded successfully", resp.Message)
	}

	assert.Equal(t, int64(4), rowCount(t, mem, config.DefaultMatchSheet))
	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultPitSheet))
}

func TestHandlePitSuccess(t *testing.T) {
	rt, mem := newRouter(t)

	body := `{"teamCode":"knights","scoutingType":"PIT","teamNumber":1792,"teamName":"Round Table Robotics","scoutName":"B. Scout"}`
	resp := rt.Handle(context.Background(), Input{Body: []byte(body)})

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Pit scouting data recorded successfully", resp.Message)
	assert.Equal(t, float64(1792), resp.TeamNumber)
	assert.Equal(t, "Round Table Robotics", resp.TeamName)
	assert.Equal(t, "B. Scout", resp.ScoutName)
	assert.Nil(t, resp.MatchNumber)

	assert.Equal(t, int64(2), rowCount(t, mem, config.DefaultPitSheet))
	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultMatchSheet))
}

func TestHandleDecodeFailure(t *testing.T) {
	rt, mem := newRouter(t)

	resp := rt.Handle(context.Background(), Input{})
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "No data received", resp.Message)

	resp = rt.Handle(context.Background(), Input{Body: []byte(`{broken`)})
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Message)

	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultMatchSheet))
	assert.Equal(t, int64(0), rowCount(t, mem, config.DefaultPitSheet))
}
