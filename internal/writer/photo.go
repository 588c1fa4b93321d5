package writer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"scouthook/internal/schemas"
)

const noPhotoMarker = "No photo"

// attachPhoto decodes the optional robotPhoto field, stores it, and writes an
// IMAGE reference into the pit row's photo cell. Every failure is downgraded
// to a note in that cell; nothing here may fail the already-appended row.
func (w *Pit) attachPhoto(ctx context.Context, rec schemas.Record, row int64) {
	photo := rec.Str("robotPhoto")
	if photo == "" {
		w.setPhotoCell(ctx, row, noPhotoMarker)
		return
	}

	url, err := w.storePhoto(ctx, rec, photo)
	if err != nil {
		w.Log.Warn("robot photo upload failed",
			zap.Int64("row", row),
			zap.String("team", rec.Str("teamNumber")),
			zap.Error(err))
		w.setPhotoCell(ctx, row, "Photo upload failed: "+err.Error())
		return
	}

	if err := w.Sheets.SetRowHeight(ctx, w.Sheet, row, 150); err != nil {
		w.Log.Warn("set photo row height", zap.Int64("row", row), zap.Error(err))
	}
	w.setPhotoCell(ctx, row, fmt.Sprintf("=IMAGE(%q, 1)", url))
	w.Log.Info("robot photo attached", zap.Int64("row", row), zap.String("url", url))
}

func (w *Pit) storePhoto(ctx context.Context, rec schemas.Record, photo string) (string, error) {
	// Strip a data-URI prefix like "data:image/jpeg;base64," when present.
	if i := strings.Index(photo, "base64,"); i != -1 {
		photo = photo[i+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(photo)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	name := fmt.Sprintf("robot_team_%s_%d.jpg", rec.Str("teamNumber"), time.Now().UnixMilli())
	return w.Photos.PutImage(ctx, name, data, "image/jpeg")
}

func (w *Pit) setPhotoCell(ctx context.Context, row int64, value string) {
	if err := w.Sheets.SetCell(ctx, w.Sheet, row, schemas.PitPhotoColumn, value); err != nil {
		w.Log.Error("write photo cell", zap.Int64("row", row), zap.Error(err))
	}
}
