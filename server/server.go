// Package server exposes the measurement and upload endpoints consumed by
// the desktop client.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/tvoss/image-measure-go/domain/measure"
)

const maxUploadBytes = 32 << 20

// Server routes measurement, upload and session requests.
type Server struct {
	logger    *slog.Logger
	store     *SessionStore
	uploadDir string
	mux       *http.ServeMux
}

// NewServer wires the handler routes. uploadDir is created when missing.
func NewServer(logger *slog.Logger, store *SessionStore, uploadDir string) (*Server, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}
	s := &Server{logger: logger, store: store, uploadDir: uploadDir}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /measure", s.handleMeasure)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /sessions", s.handleSessions)
	mux.HandleFunc("GET /sessions/{id}", s.handleSession)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	s.mux = mux
	return s, nil
}

// Handler returns the root handler for serving.
func (s *Server) Handler() http.Handler { return s.mux }

// scalePayload mirrors the client scale shape, with the alternative
// reference-segment form accepted for convenience.
type scalePayload struct {
	UnitName             string   `json:"unit_name"`
	UnitsPerPixel        *float64 `json:"units_per_pixel"`
	ReferenceDistance    *float64 `json:"reference_distance"`
	ReferencePixelLength *float64 `json:"reference_pixel_length"`
}

// resolve returns the effective units-per-pixel factor (0 = uncalibrated).
func (p *scalePayload) resolve() (float64, error) {
	if p.UnitName == "" {
		p.UnitName = measure.UnitPixels
	}
	if p.UnitsPerPixel != nil {
		return *p.UnitsPerPixel, nil
	}
	if p.ReferenceDistance != nil && p.ReferencePixelLength != nil && *p.ReferencePixelLength != 0 {
		return *p.ReferenceDistance / *p.ReferencePixelLength, nil
	}
	if p.UnitName != measure.UnitPixels {
		return 0, errors.New("provide either 'units_per_pixel' or both 'reference_distance' and 'reference_pixel_length' for non-pixel units")
	}
	return 0, nil
}

type measureRequest struct {
	Points    []measure.Point `json:"points"`
	Closed    bool            `json:"closed"`
	Scale     scalePayload    `json:"scale"`
	SessionID string          `json:"session_id"`
	Persist   bool            `json:"persist"`
}

type measureResponse struct {
	SessionID   string              `json:"session_id"`
	Measurement measure.Measurement `json:"measurement"`
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	var req measureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Closed && !measure.CanCloseLoop(req.Points) {
		s.writeDetail(w, http.StatusBadRequest, "at least three points are required to close a path")
		return
	}
	upp, err := req.Scale.resolve()
	if err != nil {
		s.writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	m := measure.Compute(req.Points, req.Closed, req.Scale.UnitName, upp)
	if req.Persist && req.SessionID != "" {
		sess := Session{
			Points:      req.Points,
			Closed:      req.Closed,
			Scale:       measure.Scale{UnitName: req.Scale.UnitName, UnitsPerPixel: upp},
			Measurement: m,
		}
		if err := s.store.Save(req.SessionID, sess); err != nil {
			s.logger.Error("session save failed", "session_id", req.SessionID, "error", err)
		}
	}
	s.writeJSON(w, http.StatusOK, measureResponse{SessionID: req.SessionID, Measurement: m})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeDetail(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		s.writeDetail(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		s.writeDetail(w, http.StatusInternalServerError, "failed to read upload")
		return
	}
	// Only payloads that decode as images are stored.
	if _, err := imaging.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		s.writeDetail(w, http.StatusUnsupportedMediaType, "bad file type")
		return
	}

	ext := filepath.Ext(hdr.Filename)
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.New().String() + ext
	dest := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("upload write failed", "dest", dest, "error", err)
		s.writeDetail(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	s.logger.Info("upload stored", "filename", hdr.Filename, "name", name, "bytes", buf.Len())
	s.writeJSON(w, http.StatusOK, map[string]string{
		"url":      "/uploads/" + name,
		"filename": hdr.Filename,
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List()
	if err != nil {
		s.writeDetail(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, ok, err := s.store.Load(id)
	if err != nil {
		s.writeDetail(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if !ok {
		s.writeDetail(w, http.StatusNotFound, "session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"session_id": id, "payload": sess})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}
