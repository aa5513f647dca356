package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/imts-dashboard/imts-go/internal/storage"
	"github.com/imts-dashboard/imts-go/pkg/imts"
	"github.com/imts-dashboard/imts-go/pkg/imts/output"
	"github.com/rs/zerolog/hlog"
)

// uploadResponse is returned after a successful upload.
type uploadResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	Filename     string         `json:"filename"`
	OriginalName string         `json:"originalName"`
	Size         int64          `json:"size"`
	ProcessLog   []string       `json:"processLog"`
	RecordCounts map[string]int `json:"recordCounts"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error      string   `json:"error"`
	Message    string   `json:"message,omitempty"`
	ProcessLog []string `json:"processLog,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, summary string, err error) {
	writeErrorLog(w, r, summary, err, nil)
}

// writeErrorLog is writeError with the process log of a failed run.
func writeErrorLog(w http.ResponseWriter, r *http.Request, summary string, err error, processLog []string) {
	status := http.StatusInternalServerError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, imts.ErrUnsupportedFileType):
		status = http.StatusBadRequest
		summary = "Unsupported file type"
	case errors.Is(err, imts.ErrSizeLimitExceeded), errors.As(err, &maxBytesErr):
		status = http.StatusRequestEntityTooLarge
		summary = "File too large"
	}

	hlog.FromRequest(r).Warn().Err(err).Int("status", status).Msg(summary)
	writeJSON(w, status, errorResponse{Error: summary, Message: err.Error(), ProcessLog: processLog})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+multipartSlack)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
			return
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "File too large", err)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid upload", Message: err.Error()})
		return
	}
	defer file.Close()

	if err := storage.ValidateName(header.Filename); err != nil {
		writeError(w, r, "Unsupported file type", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	upload, err := s.store.Save(header.Filename, file)
	if err != nil {
		writeError(w, r, "Failed to store file", err)
		return
	}
	logger := hlog.FromRequest(r)
	logger.Info().Str("filename", upload.Filename).Int64("size", upload.Size).Msg("file uploaded")

	current, err := s.store.Promote(upload)
	if err != nil {
		writeError(w, r, "Failed to process file", err)
		return
	}

	uploadedAt := upload.UploadedAt.UTC()
	opts := imts.DefaultOptions()
	opts.Layout = &s.layout
	opts.Logger = logger
	opts.Now = s.now
	opts.UploadedAt = &uploadedAt
	opts.FileName = upload.OriginalName
	opts.Period = s.cfg.Dataset.Period
	if s.cfg.Dataset.Source != "" {
		opts.Source = s.cfg.Dataset.Source
	}
	if s.cfg.Dataset.Currency != "" {
		opts.Currency = s.cfg.Dataset.Currency
	}

	result, err := imts.Run(current, s.cfg.Paths.OutputFile, opts)
	if err != nil {
		var processLog []string
		if result != nil {
			processLog = result.Log
		}
		writeErrorLog(w, r, "Failed to process file", err, processLog)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:      true,
		Message:      "File uploaded and processed successfully",
		Filename:     upload.Filename,
		OriginalName: upload.OriginalName,
		Size:         upload.Size,
		ProcessLog:   result.Log,
		RecordCounts: result.Counts,
	})
}

func (s *Server) handleDataInfo(w http.ResponseWriter, r *http.Request) {
	info, err := output.ReadInfo(s.cfg.Paths.OutputFile)
	if err != nil {
		writeError(w, r, "Failed to read data info", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := s.store.List()
	if err != nil {
		writeError(w, r, "Failed to list uploads", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploads": uploads})
}

func (s *Server) handleDataFile(w http.ResponseWriter, r *http.Request) {
	st, err := os.Stat(s.cfg.Paths.OutputFile)
	if err != nil || st.IsDir() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "No data available", Message: "upload a workbook first"})
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, s.cfg.Paths.OutputFile)
}

// spaHandler serves files from dir and falls back to index.html for
// client-side routes.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if st, err := os.Stat(path); err != nil || (st.IsDir() && !strings.HasSuffix(r.URL.Path, "/")) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fileServer.ServeHTTP(w, r)
	}
}
