// Package writer maps canonical submission records onto the fixed sheet
// schemas and appends them. The row append is the commit point for a
// submission; nothing after it (photo handling included) may undo it.
package writer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"scouthook/internal/schemas"
	"scouthook/internal/sheet"
)

// Identity carries the fields a successful submission echoes back to the
// scout's confirmation screen. Values are passed through from the record
// untouched; absent ones stay nil and are omitted from the response.
type Identity struct {
	MatchNumber any
	TeamNumber  any
	TeamName    any
	ScoutName   any
}

// Match appends match scouting records to the match sheet.
type Match struct {
	Sheets sheet.Store
	Sheet  string
	Log    *zap.Logger
}

func (w *Match) Append(ctx context.Context, rec schemas.Record) (Identity, error) {
	if _, err := w.Sheets.EnsureSheet(ctx, w.Sheet, schemas.Headers(schemas.MatchFields)); err != nil {
		return Identity{}, err
	}
	cells := schemas.Row(schemas.MatchFields, rec, resolveTimestamp(rec))
	row, err := w.Sheets.AppendRow(ctx, w.Sheet, cells)
	if err != nil {
		return Identity{}, err
	}
	w.Log.Info("match row appended",
		zap.Int64("row", row),
		zap.String("match", rec.Str("matchNumber")),
		zap.String("team", rec.Str("teamNumber")))
	return Identity{
		MatchNumber: rec["matchNumber"],
		TeamNumber:  rec["teamNumber"],
		ScoutName:   rec["studentName"],
	}, nil
}

// PhotoStore is the capability the pit writer uses to host robot photos.
type PhotoStore interface {
	PutImage(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Pit appends pit scouting records to the pit sheet and handles the optional
// robot photo.
type Pit struct {
	Sheets sheet.Store
	Photos PhotoStore
	Sheet  string
	Log    *zap.Logger
}

func (w *Pit) Append(ctx context.Context, rec schemas.Record) (Identity, error) {
	created, err := w.Sheets.EnsureSheet(ctx, w.Sheet, schemas.Headers(schemas.PitFields))
	if err != nil {
		return Identity{}, err
	}
	if created {
		// Photo column is widened once so thumbnails stay visible.
		if err := w.Sheets.SetColumnWidth(ctx, w.Sheet, schemas.PitPhotoColumn, 200); err != nil {
			w.Log.Warn("set photo column width", zap.Error(err))
		}
	}
	cells := schemas.Row(schemas.PitFields, rec, resolveTimestamp(rec))
	row, err := w.Sheets.AppendRow(ctx, w.Sheet, cells)
	if err != nil {
		return Identity{}, err
	}
	w.Log.Info("pit row appended",
		zap.Int64("row", row),
		zap.String("team", rec.Str("teamNumber")))

	// Best effort from here on; the row above already stands.
	w.attachPhoto(ctx, rec, row)

	return Identity{
		TeamNumber: rec["teamNumber"],
		TeamName:   rec["teamName"],
		ScoutName:  rec["scoutName"],
	}, nil
}

// resolveTimestamp prefers the client-supplied ISO timestamp and falls back
// to the time of writing.
func resolveTimestamp(rec schemas.Record) time.Time {
	if ts, err := time.Parse(time.RFC3339, rec.Str("timestampISO")); err == nil {
		return ts
	}
	return time.Now().UTC()
}
