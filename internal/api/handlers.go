package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"happy-badge/internal/badge"
	"happy-badge/internal/config"
	"happy-badge/internal/model"
	"happy-badge/internal/service"
	"happy-badge/internal/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	cfg      config.Config
	hub      *ws.Hub
	badgeSvc *service.BadgeService
	upgrader websocket.Upgrader
}

type apiError struct {
	Error string `json:"error"`
}

type convertResponse struct {
	Record    model.BadgeRecord `json:"record"`
	PNGBase64 string            `json:"png_b64"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("websocket requires GET"))
		return
	}
	if !websocket.IsWebSocketUpgrade(r) {
		writeErr(w, http.StatusBadRequest, errors.New("websocket upgrade required"))
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: remote=%s uri=%s err=%v", r.RemoteAddr, r.RequestURI, err)
		return
	}
	client := ws.NewClient(h.hub, conn)
	h.hub.BroadcastEvent(model.Event{Type: ws.EventClientConnected, Payload: map[string]string{"id": uuid.NewString()}, CreatedAt: time.Now().UnixMilli()})
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

// VerifyBadge answers 200 for both accepted and rejected badges; the verdict
// is in the body.
func (h *Handler) VerifyBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	name, b, err := h.readUpload(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	rec, err := h.badgeSvc.Verify(name, b)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) ConvertBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	name, b, err := h.readUpload(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	addHappy := boolDefault(r.FormValue("add_happy_color"), h.cfg.AddHappyColor)

	rec, png, err := h.badgeSvc.Convert(name, b, addHappy)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Record: rec, PNGBase64: base64.StdEncoding.EncodeToString(png)})
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, h.badgeSvc.Records())
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeErr(w, http.StatusBadRequest, errors.New("id required"))
		return
	}
	rec := h.badgeSvc.Record(id)
	if rec == nil {
		writeErr(w, http.StatusNotFound, errors.New("record not found"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) readUpload(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes); err != nil {
		return "", nil, err
	}
	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	if err := validateImageUpload(fileHeader); err != nil {
		return "", nil, err
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(fileHeader.Filename), b, nil
}

func validateImageUpload(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return nil
	default:
		return errors.New("unsupported image format")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyUpload), errors.Is(err, badge.ErrDecode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, apiError{Error: err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func boolDefault(v string, d bool) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return d
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return d
	}
	return b
}
