package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"happy-badge/internal/badge"
	"happy-badge/internal/config"
	"happy-badge/internal/model"
	"happy-badge/internal/service"
	"happy-badge/internal/storage"
	"happy-badge/internal/ws"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		DataPath:           filepath.Join(dir, "badges.json"),
		OutputDir:          filepath.Join(dir, "output") + "/",
		MaxUploadSizeBytes: 8 * 1024 * 1024,
		RecordLimit:        10,
		AddHappyColor:      true,
		Badge:              badge.DefaultParams(),
	}
	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	hub := ws.NewHub()
	return NewRouter(cfg, hub, service.NewBadgeService(cfg, store, hub))
}

func uploadRequest(t *testing.T, path, filename string, size int, fields map[string]string) *http.Request {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+3] = 255, 165, 255
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if err := badge.EncodePNG(fw, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestVerifyBadgeEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, "/v1/badge/verify", "badge.png", 512, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}
	var rec model.BadgeRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !rec.Verdict.Accepted || rec.Verdict.Reason != badge.MsgVerified {
		t.Fatalf("unexpected verdict: %+v", rec.Verdict)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/badge/record?id="+rec.ID, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status for record: %d", rr.Code)
	}
}

func TestConvertBadgeEndpoint(t *testing.T) {
	rr := httptest.NewRecorder()
	req := uploadRequest(t, "/v1/badge/convert", "small.png", 32, map[string]string{"add_happy_color": "false"})
	newTestRouter(t).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}
	var resp convertResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Record.Resized || resp.Record.Enhanced {
		t.Fatalf("unexpected record: %+v", resp.Record)
	}
	png, err := base64.StdEncoding.DecodeString(resp.PNGBase64)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, format, err := badge.Decode(bytes.NewReader(png))
	if err != nil || format != "png" {
		t.Fatalf("decode png: %v format=%s", err, format)
	}
	if img.Bounds().Dx() != 512 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}
	if got := img.NRGBAAt(256, 256); got.A != 255 {
		t.Fatalf("unexpected center pixel: %v", got)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, uploadRequest(t, "/v1/badge/verify", "badge.txt", 8, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/badge/verify", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestRecordNotFound(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/badge/record?id=missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/badge/record", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}
