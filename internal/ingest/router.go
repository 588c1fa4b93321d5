// Package ingest is the submission pipeline: decode one inbound payload into
// a canonical record, authenticate it against the team-code allow-list,
// classify it as match or pit scouting, and dispatch it to the matching
// writer. The caller always gets a structured Response back, never a panic.
package ingest

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"scouthook/internal/schemas"
	"scouthook/internal/writer"
)

// Writer appends one record and returns the identity fields for the scout's
// confirmation.
type Writer interface {
	Append(ctx context.Context, rec schemas.Record) (writer.Identity, error)
}

// Response is the payload returned for every submission. Transport concerns
// (status codes, content type) belong to the HTTP layer.
type Response struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	MatchNumber any    `json:"matchNumber,omitempty"`
	TeamNumber  any    `json:"teamNumber,omitempty"`
	TeamName    any    `json:"teamName,omitempty"`
	ScoutName   any    `json:"scoutName,omitempty"`
}

func errorResponse(err error) Response {
	return Response{Status: "error", Message: err.Error()}
}

// Router authenticates decoded submissions and dispatches them by kind.
type Router struct {
	AllowedCodes []string
	Match        Writer
	Pit          Writer
	Log          *zap.Logger
}

// Handle runs the full pipeline for one submission. Decode and auth failures
// short-circuit before any store mutation; writer failures surface as error
// responses after whatever idempotent bootstrap already happened.
func (rt *Router) Handle(ctx context.Context, in Input) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			rt.Log.Error("submission handler panicked", zap.Any("panic", r))
			resp = errorResponse(fmt.Errorf("internal error"))
		}
	}()

	rec, err := Decode(in)
	if err != nil {
		rt.Log.Warn("submission rejected: decode failed", zap.Error(err))
		return errorResponse(err)
	}

	code := rec.Str("teamCode")
	if code == "" || !slices.Contains(rt.AllowedCodes, code) {
		rt.Log.Warn("submission rejected: invalid team code", zap.String("teamCode", code))
		return errorResponse(&AuthError{Code: code})
	}

	// Anything that is not exactly PIT is handled as match scouting;
	// unrecognized kinds are not an error.
	kind := rec.Str("scoutingType")
	if kind == "" {
		kind = schemas.ScoutingTypeMatch
	}

	if kind == schemas.ScoutingTypePit {
		id, err := rt.Pit.Append(ctx, rec)
		if err != nil {
			rt.Log.Error("pit write failed", zap.Error(err))
			return errorResponse(err)
		}
		return Response{
			Status:     "success",
			Message:    "Pit scouting data recorded successfully",
			TeamNumber: id.TeamNumber,
			TeamName:   id.TeamName,
			ScoutName:  id.ScoutName,
		}
	}

	id, err := rt.Match.Append(ctx, rec)
	if err != nil {
		rt.Log.Error("match write failed", zap.Error(err))
		return errorResponse(err)
	}
	return Response{
		Status:      "success",
		Message:     "Match data recorded successfully",
		MatchNumber: id.MatchNumber,
		TeamNumber:  id.TeamNumber,
		ScoutName:   id.ScoutName,
	}
}
