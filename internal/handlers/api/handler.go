// Package api exposes the simulation operations as a JSON HTTP
// surface. Command parsing and presentation live outside this module;
// this handler is the structured boundary they call into.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/orchestrators/encounter"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/orchestrators/growth"
	"github.com/fernway/kobold/internal/orchestrators/trade"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	GrowthService    growth.Service
	EncounterService encounter.Service
	EvolutionService evolution.Service
	TradeService     trade.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GrowthService == nil {
		vb.RequiredField("GrowthService")
	}
	if c.EncounterService == nil {
		vb.RequiredField("EncounterService")
	}
	if c.EvolutionService == nil {
		vb.RequiredField("EvolutionService")
	}
	if c.TradeService == nil {
		vb.RequiredField("TradeService")
	}

	return vb.Build()
}

// Handler routes JSON requests onto the orchestrators
type Handler struct {
	growthService    growth.Service
	encounterService encounter.Service
	evolutionService evolution.Service
	tradeService     trade.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		growthService:    cfg.GrowthService,
		encounterService: cfg.EncounterService,
		evolutionService: cfg.EvolutionService,
		tradeService:     cfg.TradeService,
	}, nil
}

// Routes registers the API endpoints on a router
func (h *Handler) Routes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/encounters", h.handleGenerate).Methods("POST")
	api.HandleFunc("/encounters/throw", h.handleThrow).Methods("POST")
	api.HandleFunc("/encounters/flee", h.handleFlee).Methods("POST")
	api.HandleFunc("/experience", h.handleAward).Methods("POST")
	api.HandleFunc("/evolutions/use-item", h.handleUseItem).Methods("POST")
	api.HandleFunc("/evolutions/accept", h.handleAccept).Methods("POST")
	api.HandleFunc("/evolutions/cancel", h.handleCancel).Methods("POST")
	api.HandleFunc("/trades", h.handleTrade).Methods("POST")
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrainerID string `json:"trainer_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.encounterService.Generate(r.Context(), &encounter.GenerateInput{
		TrainerID: req.TrainerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleThrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrainerID string `json:"trainer_id"`
		Ball      string `json:"ball"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.encounterService.ThrowBall(r.Context(), &encounter.ThrowInput{
		TrainerID: req.TrainerID,
		Ball:      entities.Ball(req.Ball),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleFlee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrainerID string `json:"trainer_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.encounterService.Flee(r.Context(), &encounter.FleeInput{
		TrainerID: req.TrainerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleAward(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CreatureID string `json:"creature_id"`
		XP         int    `json:"xp"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.growthService.AwardExperience(r.Context(), &growth.AwardInput{
		CreatureID: req.CreatureID,
		XP:         req.XP,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleUseItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrainerID  string `json:"trainer_id"`
		CreatureID string `json:"creature_id"`
		Item       string `json:"item"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.evolutionService.UseItem(r.Context(), &evolution.UseItemInput{
		OwnerID:    req.TrainerID,
		CreatureID: req.CreatureID,
		Item:       req.Item,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrainerID string `json:"trainer_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.evolutionService.Accept(r.Context(), &evolution.AcceptInput{
		OwnerID: req.TrainerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrainerID string `json:"trainer_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	output, err := h.evolutionService.Cancel(r.Context(), &evolution.CancelInput{
		OwnerID: req.TrainerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func (h *Handler) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InitiatorID string `json:"initiator_id"`
		PartnerID   string `json:"partner_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	// the trade protocol suspends on both players' replies; it runs
	// for up to several minutes before this responds
	output, err := h.tradeService.Initiate(r.Context(), &trade.InitiateInput{
		InitiatorID: req.InitiatorID,
		PartnerID:   req.PartnerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, output)
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps the internal error codes onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeAlreadyExists, errors.CodeBusy:
		status = http.StatusConflict
	case errors.CodeFailedPrecondition:
		status = http.StatusPreconditionFailed
	case errors.CodeDeadlineExceeded:
		status = http.StatusRequestTimeout
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(map[string]string{
		"error": errors.GetMessage(err),
	}); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
