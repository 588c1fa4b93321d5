package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// 1x1 JPEG used for the pit photo round trip.
const testImage = "/9j/4AAQSkZJRgABAQEAYABgAAD/2wBDAAIBAQIBAQICAgICAgICAwUDAwMDAwYEBAMFBwYHBwcGBwcICQsJCAgKCAcHCg0KCgsMDAwMBwkODw0MDgsMDAz/wAARCAABAAEDASIAAhEBAxEB/8QAHwAAAQUBAQEBAQEAAAAAAAAAAAECAwQFBgcICQoL/9oADAMBAAIRAxEAPwD9/KKKKAP/2Q=="

type submitResp struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	MatchNumber any    `json:"matchNumber,omitempty"`
	TeamNumber  any    `json:"teamNumber,omitempty"`
	TeamName    any    `json:"teamName,omitempty"`
	ScoutName   any    `json:"scoutName,omitempty"`
}

type statusResp struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	MatchSheet struct {
		Name     string `json:"name"`
		Exists   bool   `json:"exists"`
		RowCount int64  `json:"rowCount"`
	} `json:"matchSheet"`
	PitSheet struct {
		Name     string `json:"name"`
		Exists   bool   `json:"exists"`
		RowCount int64  `json:"rowCount"`
	} `json:"pitSheet"`
}

func main() {
	base := envOr("WEBHOOK_BASE_URL", "http://localhost:8000")
	code := envOr("TEAM_CODE", "knights")

	baseFlag := flag.String("base", base, "Webhook base URL (e.g., http://localhost:8000)")
	codeFlag := flag.String("code", code, "Team code on the server's allow-list")
	flag.Parse()

	httpc := &http.Client{Timeout: 12 * time.Second}
	run := uuid.NewString()[:8]

	// 1) Status probe
	var st statusResp
	if err := getJSON(httpc, *baseFlag+"/", &st); err != nil {
		fatalf("status: %v", err)
	}
	fmt.Printf("✅ Webhook up: %s (match rows=%d, pit rows=%d)\n", st.Message, st.MatchSheet.RowCount, st.PitSheet.RowCount)

	// 2) Match submission, raw JSON body
	match := map[string]any{
		"teamCode":        *codeFlag,
		"scoutingType":    "MATCH",
		"timestampISO":    time.Now().UTC().Format(time.RFC3339),
		"studentName":     "Smoke Scout",
		"scoutTeam":       "1792",
		"eventCode":       "2026wiapp",
		"matchNumber":     999,
		"teamNumber":      1792,
		"alliance":        "Blue",
		"fuelNeutralZone": true,
		"autoTower":       "L1",
		"autoTowerPoints": 15,
		"comments":        "smoke run " + run,
		"estPoints":       42,
	}
	var mr submitResp
	if err := postJSON(httpc, *baseFlag+"/", match, &mr); err != nil {
		fatalf("match submit: %v", err)
	}
	if mr.Status != "success" {
		fatalf("match submit rejected: %s", mr.Message)
	}
	fmt.Printf("✅ Match submission accepted: match=%v team=%v scout=%v\n", mr.MatchNumber, mr.TeamNumber, mr.ScoutName)

	// 3) Pit submission, form-encoded with a photo
	pit := map[string]any{
		"teamCode":        *codeFlag,
		"scoutingType":    "PIT",
		"timestampISO":    time.Now().UTC().Format(time.RFC3339),
		"scoutName":       "Smoke Scout",
		"eventCode":       "2026wiapp",
		"teamNumber":      1792,
		"teamName":        "Round Table Robotics",
		"drivetrain":      "Swerve",
		"canClimb":        "L2",
		"ballCapacity":    12,
		"specialFeatures": "smoke run " + run,
		"robotPhoto":      "data:image/jpeg;base64," + testImage,
	}
	var pr submitResp
	if err := postForm(httpc, *baseFlag+"/", pit, &pr); err != nil {
		fatalf("pit submit: %v", err)
	}
	if pr.Status != "success" {
		fatalf("pit submit rejected: %s", pr.Message)
	}
	fmt.Printf("✅ Pit submission accepted: team=%v (%v)\n", pr.TeamNumber, pr.TeamName)

	// 4) Invalid team code must be rejected
	match["teamCode"] = "intruder-" + run
	var bad submitResp
	if err := postJSON(httpc, *baseFlag+"/", match, &bad); err != nil {
		fatalf("bad-code submit: %v", err)
	}
	if bad.Status != "error" {
		fatalf("bad-code submit was not rejected: %+v", bad)
	}
	fmt.Printf("✅ Invalid team code rejected: %s\n", bad.Message)

	fmt.Println("🎉 Smoke run OK")
}

// --- helpers ---

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func postJSON(c *http.Client, u string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return post(c, u, "application/json", bytes.NewReader(b), out)
}

func postForm(c *http.Client, u string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	form := url.Values{"payload": {string(b)}}
	return post(c, u, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), out)
}

func post(c *http.Client, u, contentType string, body io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	req.Header.Set("Content-Type", contentType)
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("POST %s -> %d: %s", u, res.StatusCode, string(b))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func getJSON(c *http.Client, u string, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("GET %s -> %d: %s", u, res.StatusCode, string(b))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func fatalf(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}
