package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/core/services"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db     db.Database
	cfg    *config.Config
	logger *zap.Logger
}

// NewHandlers creates new handlers
func NewHandlers(database db.Database, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{db: database, cfg: cfg, logger: logger}
}

// Response is the envelope of every API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Error: message})
}

// writeServiceError maps service errors to HTTP statuses
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCondition),
		errors.Is(err, services.ErrKitNumberOutOfRange),
		errors.Is(err, services.ErrUnknownScenario),
		errors.Is(err, services.ErrUnknownStore):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// HealthCheck reports that the server is up
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// PlanRequest is the body of POST /api/v1/kits/plan.
// Omitting allowed_transfer_days selects Monday and Thursday; an empty list means always the day before.
type PlanRequest struct {
	InitialState        kitplan.KitState   `json:"initial_state"`
	Demands             []kitplan.Demand   `json:"demands"`
	Scenarios           []kitplan.Scenario `json:"scenarios"`
	Stores              []kitplan.Store    `json:"stores"`
	AllowedTransferDays []time.Weekday     `json:"allowed_transfer_days"`
}

// PlanResponse is the result of a stateless planning run
type PlanResponse struct {
	Transfers  []kitplan.KitTransferSuggestion `json:"transfers"`
	FinalState kitplan.KitState                `json:"final_state"`
	Validation kitplan.PlanValidation          `json:"validation"`
}

// PlanTransfers runs the planner on the posted inputs without touching the database
func (h *Handlers) PlanTransfers(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for _, day := range req.AllowedTransferDays {
		if day < time.Sunday || day > time.Saturday {
			writeError(w, http.StatusBadRequest, "allowed_transfer_days must be between 0 (Sunday) and 6 (Saturday)")
			return
		}
	}

	plan := kitplan.OptimizeWeeklyTransfers(kitplan.PlanConfig{
		InitialState:        req.InitialState,
		Demands:             req.Demands,
		Scenarios:           req.Scenarios,
		Stores:              req.Stores,
		AllowedTransferDays: req.AllowedTransferDays,
	})
	validation := kitplan.ValidateTransferPlan(req.InitialState, plan.Transfers, req.Demands, req.Scenarios)

	transfers := plan.Transfers
	if transfers == nil {
		transfers = []kitplan.KitTransferSuggestion{}
	}

	writeJSON(w, http.StatusOK, PlanResponse{
		Transfers:  transfers,
		FinalState: plan.FinalState,
		Validation: validation,
	})
}

// ValidateRequest is the body of POST /api/v1/kits/validate
type ValidateRequest struct {
	InitialState kitplan.KitState                `json:"initial_state"`
	Transfers    []kitplan.KitTransferSuggestion `json:"transfers"`
	Demands      []kitplan.Demand                `json:"demands"`
	Scenarios    []kitplan.Scenario              `json:"scenarios"`
}

// ValidatePlan replays the posted transfers against the posted demands
func (h *Handlers) ValidatePlan(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, kitplan.ValidateTransferPlan(req.InitialState, req.Transfers, req.Demands, req.Scenarios))
}

// GetWeekPlan plans the week starting at {weekStart} from the organization's data
func (h *Handlers) GetWeekPlan(w http.ResponseWriter, r *http.Request) {
	weekStart := chi.URLParam(r, "weekStart")

	plan, err := services.PlanWeek(r.Context(), h.db, h.cfg, h.logger, weekStart)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// ListKitLocations lists every kit and where it is
func (h *Handlers) ListKitLocations(w http.ResponseWriter, r *http.Request) {
	kits, err := services.ListKitLocations(r.Context(), h.db, h.logger)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"kits":  kits,
		"count": len(kits),
	})
}

// UpdateTransferStatus changes the status of transfer event {id}
func (h *Handlers) UpdateTransferStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := services.UpdateTransferStatus(r.Context(), h.db, h.logger, id, req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}
