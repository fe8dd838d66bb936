package web

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/atelierware/fitbook/internal/importer"
	"github.com/atelierware/fitbook/internal/logging"
	"github.com/atelierware/fitbook/internal/store"
	"github.com/atelierware/fitbook/internal/web/middleware"
)

// previewRequest carries the uploaded file for the preview stage. The
// file content travels base64-encoded inside the JSON body.
type previewRequest struct {
	FileName    string `json:"fileName"`
	FileData    string `json:"fileData"`
	DefaultUnit string `json:"defaultUnit"`
}

// commitRequest is the confirm step: the raw rows as the client received
// them from preview, plus the column mapping to re-apply.
type commitRequest struct {
	ImportID      string            `json:"importId"`
	FileName      string            `json:"fileName"`
	Rows          []map[string]any  `json:"rows"`
	ColumnMapping map[string]string `json:"columnMapping"`
	DefaultUnit   string            `json:"defaultUnit"`
}

func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize*2)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FileName == "" {
		writeError(w, http.StatusBadRequest, "fileName is required")
		return
	}
	if req.FileData == "" {
		writeError(w, http.StatusBadRequest, "fileData is required")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		writeError(w, http.StatusBadRequest, "fileData is not valid base64")
		return
	}
	if int64(len(data)) > s.cfg.Import.MaxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds maximum size of %d bytes", s.cfg.Import.MaxFileSize))
		return
	}

	unit, err := parseUnitParam(req.DefaultUnit, s.cfg.Import.DefaultUnit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.service.Preview(data, req.FileName, unit)
	if err != nil {
		var decodeErr *importer.DecodeError
		if errors.As(err, &decodeErr) {
			writeError(w, http.StatusBadRequest, decodeErr.Error())
			return
		}
		logging.FromContext(r.Context()).Error("preview failed", "file", req.FileName, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	writeJSON(w, resp)
}

func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An empty array is a legal zero-row batch; only an absent or
	// non-array rows field is a client error.
	if req.Rows == nil {
		writeError(w, http.StatusBadRequest, "rows is required and must be an array")
		return
	}
	if req.FileName == "" {
		req.FileName = "import"
	}

	unit, err := parseUnitParam(req.DefaultUnit, s.cfg.Import.DefaultUnit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	actor, _ := middleware.PrincipalFromContext(r.Context())

	result, err := s.service.Commit(r.Context(), importer.CommitRequest{
		ImportID:      req.ImportID,
		FileName:      req.FileName,
		Rows:          req.Rows,
		ColumnMapping: req.ColumnMapping,
		DefaultUnit:   unit,
		Actor: importer.Principal{
			UserID: actor.UserID,
			Name:   actor.Name,
			Role:   actor.Role,
		},
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("commit failed", "import_id", req.ImportID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to commit import")
		return
	}

	// Row failures are reported in the body, not via the status code; a
	// batch where every row failed is still a 200.
	writeJSON(w, result)
}

func (s *Server) handleGetImportRun(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	run, err := s.queries.GetImportRun(r.Context(), importID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "import not found")
			return
		}
		logging.FromContext(r.Context()).Error("get import run failed", "import_id", importID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load import")
		return
	}

	writeJSON(w, importRunResponse(run))
}

func (s *Server) handleListImportRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.queries.ListImportRuns(r.Context(), int32(s.cfg.Import.HistoryLimit))
	if err != nil {
		logging.FromContext(r.Context()).Error("list import runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load imports")
		return
	}

	out := make([]map[string]any, 0, len(runs))
	for _, run := range runs {
		out = append(out, importRunResponse(run))
	}
	writeJSON(w, map[string]any{"imports": out})
}

// handleImportTemplate serves a starter CSV with the canonical headers
// so staff can fill a fresh sheet instead of guessing column names.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	headers := []string{
		"Client Information (Name (Reference))",
		"Client Information (Phone number)",
		"Email",
		"Address",
		"Units",
		"Across Back",
		"Chest",
		"Sleeve Length",
		"Around Arm",
		"Neck",
		"Top Length",
		"Wrist",
		"Trouser Waist",
		"Trouser Thigh",
		"Trouser Knee",
		"Trouser Length",
		"Trouser Bars",
		"Additional Info",
		"Branch",
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="measurement-import-template.csv"`)
	fmt.Fprintln(w, strings.Join(headers, ","))
}

// importRunResponse shapes a stored run for the API. The report column
// holds the JSON row-error array written at completion; it is embedded
// as-is rather than re-encoded.
func importRunResponse(run store.ImportRun) map[string]any {
	resp := map[string]any{
		"importId":       run.ID,
		"fileName":       run.FileName,
		"status":         run.Status,
		"totalRows":      run.TotalRows,
		"successfulRows": run.SuccessfulRows,
		"failedRows":     run.FailedRows,
	}
	if run.CreatedAt.Valid {
		resp["createdAt"] = run.CreatedAt.Time.UTC().Format(time.RFC3339)
	}
	if run.CompletedAt.Valid {
		resp["completedAt"] = run.CompletedAt.Time.UTC().Format(time.RFC3339)
	}
	if len(run.Report) > 0 {
		resp["errors"] = json.RawMessage(run.Report)
	}
	return resp
}

// parseUnitParam resolves the request's defaultUnit, falling back to the
// configured default. Unlike a units cell inside the file, an explicit
// request parameter must be valid.
func parseUnitParam(value, fallback string) (importer.Unit, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "cm":
		return importer.UnitCentimeters, nil
	case "in":
		return importer.UnitInches, nil
	default:
		return "", fmt.Errorf("defaultUnit must be %q or %q", importer.UnitCentimeters, importer.UnitInches)
	}
}
