package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"scouthook/internal/config"
	"scouthook/internal/ingest"
	"scouthook/internal/schemas"
	"scouthook/internal/sheet"
	"scouthook/internal/writer"
)

type Server struct {
	Sheets sheet.Store
	Router *ingest.Router
	Cfg    config.Config
	Log    *zap.Logger
}

// NewServer wires the ingestion router and sheet store behind the webhook's
// three surfaces: POST / for submissions, GET / for the status probe, and the
// token-guarded /admin sheet maintenance endpoints.
func NewServer(cfg config.Config, sheets sheet.Store, photos writer.PhotoStore, log *zap.Logger) *http.Server {
	s := &Server{
		Sheets: sheets,
		Cfg:    cfg,
		Log:    log,
		Router: &ingest.Router{
			AllowedCodes: cfg.AllowedCodes,
			Match:        &writer.Match{Sheets: sheets, Sheet: cfg.MatchSheet, Log: log},
			Pit:          &writer.Pit{Sheets: sheets, Photos: photos, Sheet: cfg.PitSheet, Log: log},
			Log:          log,
		},
	}

	r := chi.NewRouter()
	r.Use(m.RequestID, m.RealIP, m.Logger, m.Recoverer)

	r.Post("/", s.submit)
	r.Get("/", s.status)

	r.Group(func(r chi.Router) {
		r.Use(RequireAdminToken(cfg.AdminToken))
		r.Post("/admin/sheets/init", s.initSheets)
		r.Post("/admin/sheets/{kind}/clear", s.clearSheet)
	})

	return &http.Server{Addr: cfg.Addr, Handler: r}
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// submit feeds the request into the ingestion router. The response is always
// the router's JSON payload over 200, matching what the scouting apps expect;
// success vs failure is signalled by the status field inside it.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var in ingest.Input
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
			// Fall through with whatever ParseForm salvaged.
			s.Log.Warn("form parse failed", zap.Error(err))
		}
		in.Form = r.PostForm
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.Log.Warn("body read failed", zap.Error(err))
		}
		in.Body = body
	}
	writeJSON(w, http.StatusOK, s.Router.Handle(r.Context(), in))
}

type statusResp struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Timestamp  string      `json:"timestamp"`
	MatchSheet sheet.Stats `json:"matchSheet"`
	PitSheet   sheet.Stats `json:"pitSheet"`
}

// status is the read-only health probe; it never mutates either sheet.
func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	match, err := s.Sheets.Stats(r.Context(), s.Cfg.MatchSheet)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	pit, err := s.Sheets.Stats(r.Context(), s.Cfg.PitSheet)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusResp{
		Status:     "ok",
		Message:    "Combined scouting webhook is running",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		MatchSheet: match,
		PitSheet:   pit,
	})
}

func (s *Server) initSheets(w http.ResponseWriter, r *http.Request) {
	matchCreated, err := s.Sheets.EnsureSheet(r.Context(), s.Cfg.MatchSheet, schemas.Headers(schemas.MatchFields))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	pitCreated, err := s.Sheets.EnsureSheet(r.Context(), s.Cfg.PitSheet, schemas.Headers(schemas.PitFields))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	if pitCreated {
		if err := s.Sheets.SetColumnWidth(r.Context(), s.Cfg.PitSheet, schemas.PitPhotoColumn, 200); err != nil {
			s.Log.Warn("set photo column width", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"matchCreated": matchCreated,
		"pitCreated":   pitCreated,
	})
}

func (s *Server) clearSheet(w http.ResponseWriter, r *http.Request) {
	var name string
	switch chi.URLParam(r, "kind") {
	case "match":
		name = s.Cfg.MatchSheet
	case "pit":
		name = s.Cfg.PitSheet
	default:
		writeJSON(w, http.StatusNotFound, errResp{"unknown sheet kind"})
		return
	}
	cleared, err := s.Sheets.ClearData(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{err.Error()})
		return
	}
	s.Log.Info("sheet cleared", zap.String("sheet", name), zap.Int64("rows", cleared))
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": cleared})
}
