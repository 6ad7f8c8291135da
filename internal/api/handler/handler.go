package handler

import (
	"nyayadhaar/backend/internal/assistant"
	"nyayadhaar/backend/internal/dashboard"
	"nyayadhaar/backend/internal/localization"
	"nyayadhaar/backend/internal/storage"
	"nyayadhaar/backend/internal/tracker"
)

// Handler carries the services the HTTP layer dispatches into.
type Handler struct {
	Storage   storage.Storage
	Tracker   *tracker.Service
	Dashboard *dashboard.Service
	Assistant *assistant.Service
	Locale    *localization.Provider
	JWTSecret []byte
}

func NewHandler(s storage.Storage, t *tracker.Service, d *dashboard.Service, a *assistant.Service, l *localization.Provider, jwtSecret []byte) *Handler {
	return &Handler{
		Storage:   s,
		Tracker:   t,
		Dashboard: d,
		Assistant: a,
		Locale:    l,
		JWTSecret: jwtSecret,
	}
}
