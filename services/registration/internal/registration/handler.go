package registration

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger  apt.Logger
	config  *apt.Config
	tlm     *telemetry.HTTP
	service *Service
}

func NewHandler(service *Service, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		config:  config,
		logger:  logger,
		tlm:     telemetry.NewHTTP(),
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/registration", func(r chi.Router) {
		r.Post("/", h.Register)
		r.Post("/validate", h.ValidateStep)
		r.Get("/cities", h.ListCities)
	})
}

// Register runs the full wizard submission.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Register")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var data SubmissionData
	if !h.decodePayload(w, r, log, &data) {
		return
	}

	if errs := ValidateAll(data); len(errs) > 0 {
		h.respondValidationErrors(w, errs)
		return
	}

	result, err := h.service.Register(ctx, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			apt.RespondError(w, http.StatusConflict, "This email is already registered")
		case errors.Is(err, ErrWeakPassword):
			apt.RespondError(w, http.StatusBadRequest, "Please choose a stronger password")
		default:
			log.Error("registration failed", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Registration failed, please try again")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, result)
}

// ValidateStep checks one wizard step so the client can gate its Next
// button without submitting.
func (h *Handler) ValidateStep(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ValidateStep")
	defer finish()

	log := h.log(r)

	var req struct {
		Step int            `json:"step"`
		Data SubmissionData `json:"data"`
	}
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if req.Step < FirstStep || req.Step > LastStep {
		apt.RespondError(w, http.StatusBadRequest, "step must be between 1 and 3")
		return
	}

	errs := ValidateStep(req.Step, req.Data)
	response := map[string]interface{}{
		"valid":  len(errs) == 0,
		"errors": errs,
	}
	apt.Respond(w, http.StatusOK, response, nil)
}

func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCities")
	defer finish()

	apt.RespondSuccess(w, Cities)
}

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errs []ValidationError) {
	response := map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	}
	apt.Respond(w, http.StatusBadRequest, response, nil)
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, log apt.Logger, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}

	return true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
