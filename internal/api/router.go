package api

import (
	"net/http"

	"happy-badge/internal/config"
	"happy-badge/internal/service"
	"happy-badge/internal/ws"
	"github.com/gorilla/websocket"
)

func NewRouter(cfg config.Config, hub *ws.Hub, badgeSvc *service.BadgeService) http.Handler {
	h := &Handler{
		cfg:      cfg,
		hub:      hub,
		badgeSvc: badgeSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/v1/ws", h.WebSocket)
	mux.HandleFunc("/v1/badge/verify", h.VerifyBadge)
	mux.HandleFunc("/v1/badge/convert", h.ConvertBadge)
	mux.HandleFunc("/v1/badge/records", h.ListRecords)
	mux.HandleFunc("/v1/badge/record", h.GetRecord)

	return limitBody(cfg.MaxUploadSizeBytes, mux)
}

func limitBody(maxSize int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		next.ServeHTTP(w, r)
	})
}
