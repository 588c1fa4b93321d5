package schemas

import "time"

// FieldKind selects how a Record field is rendered into its row cell.
type FieldKind int

const (
	// KindTimestamp renders the resolved submission timestamp.
	KindTimestamp FieldKind = iota
	// KindString passes the raw value through, falling back to Default.
	KindString
	// KindNumber passes the raw value through, falling back to Default (0).
	KindNumber
	// KindYesNo renders truthy values as "Yes" and everything else as "No".
	KindYesNo
)

// FieldSpec is one column of a sheet: header text, the submission field it
// reads, and how it is rendered. The ordered spec list is the single source
// of truth for both the header row and the cell order of appended rows.
type FieldSpec struct {
	Header  string
	Key     string
	Kind    FieldKind
	Default any
}

// Headers returns the header row for a spec list.
func Headers(specs []FieldSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Header
	}
	return out
}

// Row folds a record over a spec list into an ordered cell slice. ts is the
// already-resolved submission timestamp.
func Row(specs []FieldSpec, rec Record, ts time.Time) []any {
	cells := make([]any, len(specs))
	for i, s := range specs {
		switch s.Kind {
		case KindTimestamp:
			cells[i] = ts.Format(time.RFC3339)
		case KindYesNo:
			if Truthy(rec[s.Key]) {
				cells[i] = "Yes"
			} else {
				cells[i] = "No"
			}
		default:
			def := s.Default
			if def == nil {
				if s.Kind == KindNumber {
					def = 0
				} else {
					def = ""
				}
			}
			cells[i] = rec.OrDefault(s.Key, def)
		}
	}
	return cells
}

// MatchFields is the match scouting sheet schema, ordered to match the
// scouting form's screen flow.
var MatchFields = []FieldSpec{
	// System & general
	{Header: "Timestamp", Kind: KindTimestamp},
	{Header: "Scout Name", Key: "studentName", Kind: KindString},
	{Header: "Scout Team", Key: "scoutTeam", Kind: KindString},
	{Header: "Event Code", Key: "eventCode", Kind: KindString},
	{Header: "Match #", Key: "matchNumber", Kind: KindNumber},
	{Header: "Team #", Key: "teamNumber", Kind: KindNumber},
	{Header: "Alliance", Key: "alliance", Kind: KindString},
	// Auto
	{Header: "Start Position", Key: "startPos", Kind: KindString},
	{Header: "Auto Fuel Range", Key: "autoFuelRange", Kind: KindString},
	{Header: "Auto - Fuel From Neutral Zone", Key: "fuelNeutralZone", Kind: KindYesNo},
	{Header: "Auto - Fuel From Outpost", Key: "fuelOutpost", Kind: KindYesNo},
	{Header: "Auto - Fuel From Depot", Key: "fuelDepot", Kind: KindYesNo},
	{Header: "Auto - Fuel From Floor", Key: "fuelFloor", Kind: KindYesNo},
	{Header: "Over Bump", Key: "autoBumpOver", Kind: KindYesNo},
	{Header: "Under Trench", Key: "autoTrenchUnder", Kind: KindYesNo},
	{Header: "Bump/Trench None", Key: "autoBumpTrenchNone", Kind: KindYesNo},
	{Header: "Auto Shuttling", Key: "autoShuttling", Kind: KindString},
	{Header: "Auto Tower", Key: "autoTower", Kind: KindString, Default: "NONE"},
	{Header: "Auto Tower Pts", Key: "autoTowerPoints", Kind: KindNumber},
	// Teleop
	{Header: "Teleop Fuel (Active) Range", Key: "teleopFuelActiveRange", Kind: KindString},
	{Header: "Teleop - Fuel From Neutral Zone", Key: "teleopFuelNeutralZone", Kind: KindYesNo},
	{Header: "Teleop - Fuel From Outpost", Key: "teleopFuelOutpost", Kind: KindYesNo},
	{Header: "Teleop - Fuel From Depot", Key: "teleopFuelDepot", Kind: KindYesNo},
	{Header: "Teleop - Fuel From Floor", Key: "teleopFuelFloor", Kind: KindYesNo},
	{Header: "Inactive - Played Defense", Key: "inactivePlayedDefense", Kind: KindYesNo},
	{Header: "Inactive - Shuttled Fuel", Key: "inactiveShuttledFuel", Kind: KindYesNo},
	{Header: "Inactive - Blocked Bump/Trench", Key: "inactiveBlockedBumpTrench", Kind: KindYesNo},
	{Header: "Inactive - Collecting Fuel", Key: "inactiveCollectingFuel", Kind: KindYesNo},
	{Header: "Shuttling", Key: "shuttling", Kind: KindString},
	// Endgame
	{Header: "Endgame Tower Level", Key: "teleopTower", Kind: KindString, Default: "NONE"},
	{Header: "Endgame Tower Pts", Key: "teleopTowerPoints", Kind: KindNumber},
	{Header: "Climb Position", Key: "climbPos", Kind: KindString},
	{Header: "Shot In Hub", Key: "shotInHub", Kind: KindString},
	// Misc
	{Header: "Affected By Defense", Key: "affectedByDefense", Kind: KindString},
	{Header: "Robot Status", Key: "robotStatus", Kind: KindString},
	{Header: "Defense Rating", Key: "defenseRating", Kind: KindString},
	{Header: "Crossed Bump", Key: "crossedBump", Kind: KindString},
	{Header: "Crossed Trench", Key: "crossedTrench", Kind: KindString},
	{Header: "Comments", Key: "comments", Kind: KindString},
	{Header: "Rank (1-3)", Key: "rank", Kind: KindString},
	// Calculated
	{Header: "Est Points", Key: "estPoints", Kind: KindNumber},
}

// PitFields is the pit scouting sheet schema. The final column is the photo
// cell; its value is populated after the row append by the attachment step,
// so the spec renders it as an empty placeholder.
var PitFields = []FieldSpec{
	// System & general
	{Header: "Timestamp", Kind: KindTimestamp},
	{Header: "Scout Name", Key: "scoutName", Kind: KindString},
	{Header: "Event Code", Key: "eventCode", Kind: KindString},
	{Header: "Team #", Key: "teamNumber", Kind: KindNumber},
	{Header: "Team Name", Key: "teamName", Kind: KindString},
	// Robot design
	{Header: "Drivetrain Type", Key: "drivetrain", Kind: KindString},
	{Header: "Motor Type", Key: "motorType", Kind: KindString},
	{Header: "Width (in)", Key: "width", Kind: KindString},
	{Header: "Length (in)", Key: "length", Kind: KindString},
	{Header: "Height (in)", Key: "height", Kind: KindString},
	{Header: "Programming Language", Key: "programmingLang", Kind: KindString},
	{Header: "Can Climb Tower", Key: "canClimb", Kind: KindString, Default: "No"},
	{Header: "Has Hopper", Key: "hopper", Kind: KindString, Default: "No"},
	{Header: "Hopper Length (in)", Key: "hopperLength", Kind: KindString},
	{Header: "Hopper Width (in)", Key: "hopperWidth", Kind: KindString},
	{Header: "Hopper Height (in)", Key: "hopperHeight", Kind: KindString},
	{Header: "Ball Capacity", Key: "ballCapacity", Kind: KindNumber},
	{Header: "Special Features", Key: "specialFeatures", Kind: KindString},
	// Photo
	{Header: "Robot Photo", Kind: KindString},
}

// PitPhotoColumn is the 1-based column of the pit sheet's photo cell.
var PitPhotoColumn = len(PitFields)
