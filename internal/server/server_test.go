package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/imts-dashboard/imts-go/internal/config"
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        "0",
			MaxUploadMB: 50,
			CORSOrigins: []string{"*"},
		},
		Paths: config.PathConfig{
			DataDir:    filepath.Join(dir, "data"),
			UploadsDir: filepath.Join(dir, "uploads"),
			OutputFile: filepath.Join(dir, "public", "data.json"),
		},
	}
	clock := func() time.Time { return time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC) }
	return New(cfg, layout.Default(), zerolog.Nop(), append([]Option{WithClock(clock)}, opts...)...)
}

// workbookBytes builds a small xlsx with a balance-of-trade sheet.
func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "1_BalanceOfTrade"))
	require.NoError(t, f.SetCellValue("1_BalanceOfTrade", "A1", "Balance of trade"))
	require.NoError(t, f.SetCellValue("1_BalanceOfTrade", "A4", 202412))
	require.NoError(t, f.SetCellValue("1_BalanceOfTrade", "B4", "Exports"))
	require.NoError(t, f.SetCellValue("1_BalanceOfTrade", "C4", 1500.456))
	require.NoError(t, f.SetCellValue("1_BalanceOfTrade", "D4", 900.123))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestUpload(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "Tables_Nov2024.xlsx", workbookBytes(t)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Tables_Nov2024.xlsx", body["originalName"])
	assert.Regexp(t, `^Tables_Nov2024_20250801_100000_[0-9a-f]{8}\.xlsx$`, body["filename"])
	assert.NotEmpty(t, body["processLog"])
	counts := body["recordCounts"].(map[string]any)
	assert.Equal(t, float64(1), counts["balanceOfTrade"])
	assert.Equal(t, float64(0), counts["tradeByRegion"])

	assert.FileExists(t, filepath.Join(s.cfg.Paths.DataDir, "current_data.xlsx"))

	data, err := os.ReadFile(s.cfg.Paths.OutputFile)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	meta := doc["metadata"].(map[string]any)
	assert.Equal(t, "Tables_Nov2024.xlsx", meta["fileName"])
	assert.Equal(t, "2025-08-01T10:00:00Z", meta["uploadedAt"])
	balance := doc["balanceOfTrade"].([]any)[0].(map[string]any)
	assert.Equal(t, 600.34, balance["balance"])
}

func TestUploadSharesClockWithMetadata(t *testing.T) {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	ticks := 0
	s := newTestServer(t, WithClock(func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}))

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "Tables.xlsx", workbookBytes(t)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Regexp(t, `^Tables_20250801_100001_[0-9a-f]{8}\.xlsx$`, decode(t, rec)["filename"])

	data, err := os.ReadFile(s.cfg.Paths.OutputFile)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2025-08-01T10:00:01Z", doc["metadata"].(map[string]any)["uploadedAt"])
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.cfg.Paths.OutputFile), 0755))
	require.NoError(t, os.WriteFile(s.cfg.Paths.OutputFile, []byte(`{"previous":true}`), 0644))

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "report.docx", []byte("not a workbook")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Unsupported file type", body["error"])
	assert.NotEmpty(t, body["message"])

	data, err := os.ReadFile(s.cfg.Paths.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, `{"previous":true}`, string(data))
	assert.NoDirExists(t, s.cfg.Paths.UploadsDir)
}

func TestUploadMissingFile(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "attachment", "Tables.xlsx", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode(t, rec)["error"])
}

func TestUploadTooLarge(t *testing.T) {
	s := newTestServer(t)
	s.maxBytes = 16
	s.store.MaxBytes = 16

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "big.csv", bytes.Repeat([]byte("1,"), 100)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "File too large", decode(t, rec)["error"])
	assert.NoFileExists(t, s.cfg.Paths.OutputFile)
}

func TestUploadProcessingFailure(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "empty.csv", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to process file", body["error"])
	assert.Contains(t, body["message"], "processing failed")
	assert.NoFileExists(t, s.cfg.Paths.OutputFile)

	processLog, ok := body["processLog"].([]any)
	require.True(t, ok, rec.Body.String())
	require.NotEmpty(t, processLog)
	assert.Equal(t, "reading current_data.csv", processLog[0])
	assert.Contains(t, processLog[len(processLog)-1], "error: processing failed")
}

func TestDataInfo(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data-info", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["exists"])

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "Tables.xlsx", workbookBytes(t)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data-info", nil))
	body := decode(t, rec)
	assert.Equal(t, true, body["exists"])
	assert.Len(t, body["recordCounts"], len(layout.Keys))
	assert.Equal(t, "Vanuatu National Statistics Office", body["metadata"].(map[string]any)["source"])
}

func TestUploadsList(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decode(t, rec)["uploads"])

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "file", "Tables.xlsx", workbookBytes(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/uploads", nil))
	uploads := decode(t, rec)["uploads"].([]any)
	require.Len(t, uploads, 1)
	assert.Contains(t, uploads[0].(map[string]any), "uploadedAt")
}

func TestDataFile(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, os.MkdirAll(filepath.Dir(s.cfg.Paths.OutputFile), 0755))
	require.NoError(t, os.WriteFile(s.cfg.Paths.OutputFile, []byte(`{"balanceOfTrade":[]}`), 0644))

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"balanceOfTrade":[]}`, string(body))
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStaticFallback(t *testing.T) {
	s := newTestServer(t)
	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>app</html>"), 0644))
	s.cfg.Server.StaticDir = static
	s = New(s.cfg, layout.Default(), zerolog.Nop())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trade-partners", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")
}
