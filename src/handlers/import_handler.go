// backend/src/handlers/import_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/username/tradejournal/backend/src/logger"
	"github.com/username/tradejournal/backend/src/parsers"
	"github.com/username/tradejournal/backend/src/parsers/generic"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
	"github.com/username/tradejournal/backend/src/security/validation"
	"github.com/username/tradejournal/backend/src/services"
	"github.com/username/tradejournal/backend/src/utils"
)

type ImportHandler struct {
	importService      services.ImportService
	maxUploadSizeBytes int64
}

func NewImportHandler(service services.ImportService, maxUploadSizeBytes int64) *ImportHandler {
	return &ImportHandler{
		importService:      service,
		maxUploadSizeBytes: maxUploadSizeBytes,
	}
}

// importResponse is returned by both import endpoints.
type importResponse struct {
	Files      []*services.ImportResult `json:"files"`
	Added      int                      `json:"added"`
	Duplicates int                      `json:"duplicates"`
	Skipped    int                      `json:"skipped"`
}

func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, false)
}

func (h *ImportHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, true)
}

func (h *ImportHandler) handle(w http.ResponseWriter, r *http.Request, preview bool) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in request", http.StatusUnauthorized)
		return
	}
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSizeBytes)
	if err := r.ParseMultipartForm(h.maxUploadSizeBytes); err != nil {
		log.Warn("Failed to parse multipart form or request too large", "userID", userID, "error", err, "limit", h.maxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", h.maxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileHeaders := r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}

	source := strings.TrimSpace(r.FormValue("source"))
	if source == "" {
		utils.SendJSONError(w, "The 'source' field is required.", http.StatusBadRequest)
		return
	}

	var columns map[string]string
	if raw := strings.TrimSpace(r.FormValue("mapping")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &columns); err != nil {
			log.Warn("Invalid column mapping", "userID", userID, "error", err)
			utils.SendJSONError(w, "The 'mapping' field must be a JSON object of field name to column header.", http.StatusBadRequest)
			return
		}
		for field, header := range columns {
			columns[field] = validation.SanitizeHeaderValue(header)
		}
	}

	reqs := make([]services.ImportRequest, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := h.openValidated(fh, userID)
		if err != nil {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		reqs = append(reqs, services.ImportRequest{
			UserID:    userID,
			AccountID: strings.TrimSpace(r.FormValue("account")),
			Source:    source,
			FileName:  fh.Filename,
			File:      file,
			Mapping:   columns,
			DateOrder: r.FormValue("date_order"),
		})
	}

	log.Info("Processing import request", "userID", userID, "source", source, "files", len(reqs), "preview", preview)

	var results []*services.ImportResult
	var err error
	switch {
	case preview:
		results = make([]*services.ImportResult, 0, len(reqs))
		for _, req := range reqs {
			res, perr := h.importService.PreviewFile(r.Context(), req)
			if perr != nil {
				err = fmt.Errorf("%s: %w", req.FileName, perr)
				break
			}
			results = append(results, res)
		}
	case len(reqs) == 1:
		var res *services.ImportResult
		if res, err = h.importService.ImportFile(r.Context(), reqs[0]); err == nil {
			results = []*services.ImportResult{res}
		}
	default:
		results, err = h.importService.ImportBatch(r.Context(), reqs)
	}
	if err != nil {
		sendImportError(w, r, userID, err)
		return
	}

	resp := importResponse{Files: results}
	for _, res := range results {
		resp.Added += res.Added
		resp.Duplicates += res.Duplicates
		resp.Skipped += res.Skipped
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("Error encoding JSON response for import result", "userID", userID, "error", err)
	}
}

// openValidated applies the size, declared type and magic byte checks to one uploaded file.
func (h *ImportHandler) openValidated(fh *multipart.FileHeader, userID string) (multipart.File, error) {
	if fh.Size > h.maxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "userID", userID, "fileSize", fh.Size, "limit", h.maxUploadSizeBytes)
		return nil, fmt.Errorf("file %s too large, max %d MB", fh.Filename, h.maxUploadSizeBytes/(1024*1024))
	}

	clientContentType := fh.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "userID", userID, "contentType", clientContentType, "error", err)
		return nil, err
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s", fh.Filename)
	}
	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		file.Close()
		logger.L.Warn("Server-side file content validation failed", "userID", userID, "filename", fh.Filename, "error", err)
		return nil, err
	}
	logger.L.Debug("File content validated by magic bytes", "userID", userID, "filename", fh.Filename, "detectedType", detectedContentType)
	return file, nil
}

// sendImportError turns service errors into messages that name the probable cause.
func sendImportError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	log := logger.FromContext(r.Context())
	var formatErr *mapping.FormatError

	switch {
	case errors.As(err, &formatErr):
		log.Warn("Import rejected: unrecognized file format", "userID", userID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("The file does not look like a %s export. %s", formatErr.Source, describeMissing(formatErr)), http.StatusUnprocessableEntity)
	case errors.Is(err, parsers.ErrUnknownSource):
		log.Warn("Import rejected: unknown source", "userID", userID, "error", err)
		utils.SendJSONError(w, "Unsupported source. See /api/sources for the supported export formats.", http.StatusBadRequest)
	case errors.Is(err, parsers.ErrMappingRequired), errors.Is(err, generic.ErrInvalidMapping):
		log.Warn("Import rejected: bad column mapping", "userID", userID, "error", err)
		utils.SendJSONError(w, "A generic CSV import needs a 'mapping' with columns for instrument, quantity, entry_time and close_time.", http.StatusBadRequest)
	case errors.Is(err, services.ErrNoTrades):
		log.Warn("Import produced no trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "No valid trades were found in the file. Each trade needs an instrument, a quantity, an open time and a close time.", http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrParsingFailed):
		log.Warn("Import failed due to CSV parsing errors", "userID", userID, "error", err)
		utils.SendJSONError(w, "The file could not be read as a CSV export. Check that it is comma, semicolon or tab separated with a header row.", http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidRequest):
		utils.SendJSONError(w, "Invalid import request.", http.StatusBadRequest)
	case errors.Is(err, services.ErrStorageFailed):
		log.Error("Import failed while saving trades", "userID", userID, "error", err)
		utils.SendJSONError(w, "Your trades could not be saved. Please try again.", http.StatusInternalServerError)
	default:
		log.Error("Internal error processing import", "userID", userID, "error", err)
		utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
	}
}

func describeMissing(e *mapping.FormatError) string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (expected one of: %s)", m.Field, strings.Join(m.Accepted, ", ")))
	}
	return "Missing columns: " + strings.Join(parts, "; ") + "."
}

func (h *ImportHandler) HandleGetSources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.importService.Sources()); err != nil {
		logger.FromContext(r.Context()).Error("Error encoding sources", "error", err)
	}
}
