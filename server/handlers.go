package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/spektr-org/vizdeck/dataset"
	"github.com/spektr-org/vizdeck/engine"
	"github.com/spektr-org/vizdeck/helpers"
	"github.com/spektr-org/vizdeck/schema"
)

type kindInfo struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
	UsesX bool   `json:"usesX"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := engine.Kinds()
	out := make([]kindInfo, len(kinds))
	for i, k := range kinds {
		out[i] = kindInfo{Tag: k.String(), Label: k.Label(), UsesX: k.UsesX()}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kinds": out})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, schema.Classify(ds))
}

type previewBody struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"totalRows"`
}

// handlePreview returns the loaded table as text, optionally capped by "limit".
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	limit, err := formInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, previewBody{
		Columns:   ds.Names(),
		Rows:      ds.Rows(limit),
		TotalRows: ds.Len(),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	kind, err := engine.ParseChartKind(r.FormValue("kind"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.chartOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	req := engine.ChartRequest{
		Kind:    kind,
		XColumn: strings.TrimSpace(r.FormValue("x")),
		YColumn: strings.TrimSpace(r.FormValue("y")),
	}
	if expired(r) {
		return
	}
	art, err := engine.Render(ds, req, opts...)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", art.ContentType())
	w.Header().Set("X-Chart-Title", art.Title())
	w.Header().Set("X-Artifact-ID", art.ID().String())
	w.WriteHeader(http.StatusOK)
	w.Write(art.Bytes())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	if expired(r) {
		return
	}
	layout, err := engine.BuildDashboard(ds)
	if err != nil {
		writeError(w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		writeJSON(w, http.StatusOK, layout)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(layout.Figure())
}

// chartOptions starts from the configured defaults; form fields override them.
func (s *Server) chartOptions(r *http.Request) ([]engine.Option, error) {
	opts := s.cfg.RenderOptions()

	if v := r.FormValue("format"); v != "" {
		f, err := engine.ParseFormat(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithFormat(f))
	}

	width, err := formInt(r, "width")
	if err != nil {
		return nil, err
	}
	height, err := formInt(r, "height")
	if err != nil {
		return nil, err
	}
	if width > 0 || height > 0 {
		opts = append(opts, engine.WithSize(width, height))
	}

	bins, err := formInt(r, "bins")
	if err != nil {
		return nil, err
	}
	if bins > 0 {
		opts = append(opts, engine.WithBins(bins))
	}

	return opts, nil
}

// formInt reads an optional positive integer field. Absent means 0.
func formInt(r *http.Request, field string) (int, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, &engine.ValidationError{Field: field, Value: v, Reason: "expected a positive integer"}
	}
	return n, nil
}

// readUpload parses the multipart form and loads the "file" part.
// On failure the error response is already written, unless the request
// deadline passed.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	limit := s.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Error: fmt.Sprintf("upload exceeds %d MB", s.cfg.Server.MaxUploadMB),
			})
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "expected a multipart form: " + err.Error()})
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing form file \"file\""})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return nil, false
	}

	ds, err := helpers.Load(header.Filename, data)
	if err != nil {
		log.Printf("⚠️  vizdeck: cannot load %q: %v", header.Filename, err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return nil, false
	}

	log.Printf("📂 vizdeck: loaded %q (%d rows x %d columns)", header.Filename, ds.Len(), ds.Width())
	if expired(r) {
		return nil, false
	}
	return ds, true
}

// expired reports whether the request deadline has passed. Nothing must be
// written then: middleware.Timeout answers 504 once the handler returns.
func expired(r *http.Request) bool {
	if err := r.Context().Err(); err != nil {
		log.Printf("⏱️ vizdeck: %s %s abandoned: %v", r.Method, r.URL.Path, err)
		return true
	}
	return false
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrEmptyDataset), errors.Is(err, engine.ErrRender):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  vizdeck: encode response: %v", err)
	}
}
