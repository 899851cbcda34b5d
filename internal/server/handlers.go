package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/oneiric/dreamtemple/internal/ledger"
	"github.com/oneiric/dreamtemple/internal/server/sse"
	"github.com/oneiric/dreamtemple/internal/session"
	"github.com/oneiric/dreamtemple/internal/store"
	"github.com/oneiric/dreamtemple/pkg/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.startTime).String(),
	})
}

func (s *Service) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() {
		writeError(w, http.StatusServiceUnavailable, "service not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// effectView decorates an active effect with its remaining time.
type effectView struct {
	models.StatusEffect
	RemainingMs int64  `json:"remaining_ms"`
	Remaining   string `json:"remaining"`
}

func (s *Service) handleListEffects(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UnixMilli()

	active := s.ledger.Active(now)
	views := make([]effectView, 0, len(active))
	for i := range active {
		views = append(views, effectView{
			StatusEffect: active[i],
			RemainingMs:  ledger.RemainingTime(&active[i], now),
			Remaining:    ledger.FormatRemaining(&active[i], now),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active":  views,
		"history": s.ledger.History(),
	})
}

func (s *Service) handleAdmitEffect(w http.ResponseWriter, r *http.Request) {
	var spec models.EffectSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid effect spec: "+err.Error())
		return
	}
	if spec.Name == "" {
		writeError(w, http.StatusBadRequest, "effect name is required")
		return
	}

	id, err := s.ledger.Admit(spec, time.Now().UnixMilli())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sse.Broadcast(sse.Event{Type: "effect_admitted", Data: map[string]string{"id": id, "name": spec.Name}})
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Service) handleRevokeEffect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.ledger.Revoke(id, time.Now().UnixMilli()) {
		writeError(w, http.StatusNotFound, "effect not active: "+id)
		return
	}

	s.sse.Broadcast(sse.Event{Type: "effect_revoked", Data: map[string]string{"id": id}})
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Service) handleAggregateEffects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.AggregateMagnitudes(time.Now().UnixMilli()))
}

func (s *Service) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var input session.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session input: "+err.Error())
		return
	}

	result, err := s.engine.Complete(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sse.Broadcast(sse.Event{Type: "session_completed", Data: map[string]any{
		"session_id": result.Session.ID,
		"tier":       result.Tier,
		"xp":         result.XPEarned,
	}})
	writeJSON(w, http.StatusCreated, result)
}

func (s *Service) handleListSessions(w http.ResponseWriter, r *http.Request) {
	filter := store.SessionFilter{
		Type:  models.SessionType(r.URL.Query().Get("type")),
		Limit: 50,
	}
	if raw := r.URL.Query().Get("min_imprint"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_imprint")
			return
		}
		filter.MinImprint = v
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = v
	}
	if filter.Type != "" && !models.ValidSessionType(filter.Type) {
		writeError(w, http.StatusBadRequest, "unknown session type: "+string(filter.Type))
		return
	}

	sessions, err := s.sessions.ListSessions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

type scanRequest struct {
	Content string             `json:"content"`
	Type    models.SessionType `json:"type"`
}

// handleScan runs a dry scan: detections and would-be buffs, with no
// ledger, bond, or stats side effects.
func (s *Service) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid scan request: "+err.Error())
		return
	}
	if req.Type == "" {
		req.Type = models.SessionText
	}
	if !models.ValidSessionType(req.Type) {
		writeError(w, http.StatusBadRequest, "unknown session type: "+string(req.Type))
		return
	}

	writeJSON(w, http.StatusOK, s.scanner.Scan(req.Content, req.Type))
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Stats())
}

func (s *Service) handleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"achievements": s.tracker.Achievements()})
}

func (s *Service) handleCompanions(w http.ResponseWriter, r *http.Request) {
	bonds := s.registry.Bonds()
	meters := make([]models.BondMeter, 0, len(bonds))
	for _, b := range bonds {
		meters = append(meters, s.registry.Meter(b.Name))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bonds":  bonds,
		"meters": meters,
	})
}
