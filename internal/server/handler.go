package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	omniconvert "github.com/omniconvert/omniconvert-go"
	"github.com/omniconvert/omniconvert-go/internal/storage"
)

// Converter is the dispatcher operation the HTTP boundary depends on.
type Converter interface {
	Convert(ctx context.Context, req omniconvert.ConversionRequest, outputDir string) omniconvert.ConversionOutcome
}

type handler struct {
	converter      Converter
	uploads        *storage.Store
	converted      *storage.Store
	maxUploadBytes int64
}

func newHandler(c Converter, uploads, converted *storage.Store, maxUploadMb int64) *handler {
	return &handler{
		converter:      c,
		uploads:        uploads,
		converted:      converted,
		maxUploadBytes: maxUploadMb << 20,
	}
}

// convertResponse is the uniform boundary contract: exactly one of a
// download reference or a structured error message.
type convertResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}

	logger := slog.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("handler", "convert"),
		slog.String("remote_addr", r.RemoteAddr),
	)

	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Error("parse multipart form", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "unable to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("missing file field")
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	targetFormat := normalizeFormatToken(r.FormValue("targetFormat"))
	if targetFormat == "" {
		writeError(w, http.StatusBadRequest, "field `targetFormat` is required")
		return
	}
	customName := r.FormValue("customName")

	stored, err := h.uploads.Save(file, header.Filename)
	if err != nil {
		logger.Error("store upload", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "cannot store uploaded file")
		return
	}

	logger = logger.With(
		slog.String("file_name", header.Filename),
		slog.String("source_ext", stored.Ext),
		slog.String("target_format", targetFormat),
		slog.String("detected_mime", stored.MIME),
	)
	logger.Info("conversion job accepted")

	outcome := h.converter.Convert(r.Context(), omniconvert.ConversionRequest{
		SourcePath:   stored.Path,
		OriginalName: header.Filename,
		SourceExt:    stored.Ext,
		TargetFormat: targetFormat,
		CustomName:   customName,
	}, h.converted.Dir())

	if outcome.Succeeded {
		logger.Info("conversion succeeded",
			slog.String("output", outcome.OutputFilename),
			slog.Int("attempts", len(outcome.Attempts)),
		)
		writeJSON(w, http.StatusOK, convertResponse{
			Success:     true,
			DownloadURL: "/converted/" + outcome.OutputFilename,
			Filename:    outcome.OutputFilename,
		})
		return
	}

	status := http.StatusInternalServerError
	if omniconvert.IsUnsupportedPair(outcome.Err) {
		status = http.StatusBadRequest
	}
	logger.Warn("conversion failed",
		slog.Int("status", status),
		slog.Int("attempts", len(outcome.Attempts)),
		slog.String("error", outcome.Err.Error()),
	)
	writeJSON(w, status, convertResponse{Success: false, Error: outcome.ErrorMessage})
}

func (h *handler) download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/converted/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing file name")
		return
	}

	f, err := h.converted.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		slog.Error("open converted file",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+info.Name()+`"`)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// normalizeFormatToken lowercases a target format and strips a leading dot,
// matching the dispatcher's token convention.
func normalizeFormatToken(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}

func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	writeJSON(w, status, convertResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", slog.String("error", err.Error()))
	}
}
