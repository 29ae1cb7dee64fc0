package hiring

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
	"github.com/mealmesh/mealmesh/pkg/session"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
	repo      HiringRequestRepo
	publisher events.Publisher
}

type HandlerDeps struct {
	Repo      HiringRequestRepo
	Publisher events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
		repo:      hd.Repo,
		publisher: hd.Publisher,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/hiring-requests", func(r chi.Router) {
		r.Post("/", h.CreateRequest)
		r.Get("/", h.ListRequests)
		r.Get("/buckets", h.ListRequestBuckets)
		r.Get("/{id}", h.GetRequest)
		r.Patch("/{id}/accept", h.AcceptRequest)
		r.Patch("/{id}/reject", h.RejectRequest)
		r.Patch("/{id}/terminate", h.TerminateRequest)
		r.Patch("/{id}/reactivate", h.ReactivateRequest)
		r.Delete("/{id}", h.DeleteRequest)
	})
}

// CreateRequest files a courier's application to a restaurant. A second
// application is refused while a pending or accepted one exists for the
// same pair; a closed one (rejected, terminated) does not block.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateRequest")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, ok := h.decodeCreatePayload(w, r, log)
	if !ok {
		return
	}

	if req.RestaurantID == uuid.Nil {
		log.Debug("missing restaurant id in hiring request")
		apt.RespondError(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}

	existing, err := h.repo.ListByCourier(ctx, sess.UserID)
	if err != nil {
		log.Error("cannot list courier requests", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create hiring request")
		return
	}
	if HasLiveRequest(existing, req.RestaurantID) {
		apt.RespondError(w, http.StatusConflict, "A request for this restaurant is already open")
		return
	}

	hr := NewHiringRequest()
	hr.CourierID = sess.UserID
	hr.CourierName = sess.Name
	hr.RestaurantID = req.RestaurantID
	hr.RestaurantName = req.RestaurantName
	hr.BeforeCreate()

	if err := h.repo.Create(ctx, hr); err != nil {
		log.Error("cannot create hiring request", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create hiring request")
		return
	}

	h.publishRequestEvent(ctx, event.EventHiringRequestCreated, hr)

	links := apt.RESTfulLinksFor(hr)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, hr, links...)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetRequest")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	hr, err := h.repo.Get(ctx, id)
	if err != nil || hr == nil {
		log.Error("hiring request not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Hiring request not found")
		return
	}

	links := apt.RESTfulLinksFor(hr)
	apt.RespondSuccess(w, hr, links...)
}

// ListRequests filters by courier_id or restaurant_id. Without a filter
// the full list is reserved for back-office roles.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListRequests")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var requests []*HiringRequest
	var err error

	switch {
	case r.URL.Query().Get("courier_id") != "":
		var courierID uuid.UUID
		courierID, err = uuid.Parse(r.URL.Query().Get("courier_id"))
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid courier_id")
			return
		}
		requests, err = h.repo.ListByCourier(ctx, courierID)
	case r.URL.Query().Get("restaurant_id") != "":
		var restaurantID uuid.UUID
		restaurantID, err = uuid.Parse(r.URL.Query().Get("restaurant_id"))
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid restaurant_id")
			return
		}
		requests, err = h.repo.ListByRestaurant(ctx, restaurantID)
	default:
		if sess.Role != session.RoleAdmin && sess.Role != session.RoleDeveloper {
			apt.RespondError(w, http.StatusForbidden, "Insufficient role")
			return
		}
		requests, err = h.repo.List(ctx)
	}
	if err != nil {
		log.Error("error retrieving hiring requests", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve hiring requests")
		return
	}

	apt.RespondCollection(w, requests, "hiring-request")
}

// ListRequestBuckets partitions the caller's requests for the hiring
// board. A courier_id param lets back-office roles inspect another
// courier's board.
func (h *Handler) ListRequestBuckets(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListRequestBuckets")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	courierID := sess.UserID
	if param := r.URL.Query().Get("courier_id"); param != "" {
		parsed, err := uuid.Parse(param)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid courier_id")
			return
		}
		courierID = parsed
	}

	requests, err := h.repo.ListByCourier(ctx, courierID)
	if err != nil {
		log.Error("error retrieving hiring requests", "error", err, "courier_id", courierID.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve hiring requests")
		return
	}

	buckets := Bucketize(requests)
	applied := make(map[string]string, len(buckets.ByRestaurant))
	for restaurantID, hr := range buckets.ByRestaurant {
		applied[restaurantID.String()] = hr.Status
	}

	response := map[string]interface{}{
		"active":     buckets.Active,
		"pending":    buckets.Pending,
		"terminated": buckets.Terminated,
		"rejected":   buckets.Rejected,
		"applied":    applied,
	}
	apt.Respond(w, http.StatusOK, response, nil)
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AcceptRequest")
	defer finish()
	h.applyTransition(w, r, "accept", func(hr *HiringRequest, by string) bool {
		return hr.Accept(by)
	})
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RejectRequest")
	defer finish()
	h.applyTransition(w, r, "reject", func(hr *HiringRequest, by string) bool {
		return hr.Reject(by)
	})
}

// TerminateRequest ends an accepted engagement. Destructive for the
// courier, so it requires confirm=true.
func (h *Handler) TerminateRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TerminateRequest")
	defer finish()

	if !h.confirmed(w, r, "Terminating ends the engagement with this restaurant") {
		return
	}
	h.applyTransition(w, r, "terminate", func(hr *HiringRequest, by string) bool {
		return hr.Terminate(by)
	})
}

func (h *Handler) ReactivateRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ReactivateRequest")
	defer finish()
	h.applyTransition(w, r, "reactivate", func(hr *HiringRequest, by string) bool {
		return hr.Reactivate(by)
	})
}

// DeleteRequest removes a closed request from the courier's history.
// Live requests cannot be deleted; terminate or reject them first.
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteRequest")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	if _, ok := session.FromContext(ctx); !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	hr, err := h.repo.Get(ctx, id)
	if err != nil || hr == nil {
		log.Error("hiring request not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Hiring request not found")
		return
	}

	if !hr.IsTerminal() {
		apt.RespondError(w, http.StatusBadRequest, "Only rejected or terminated requests can be deleted")
		return
	}

	if !h.confirmed(w, r, "Deleting removes this request from your history") {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Error("cannot delete hiring request", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete hiring request")
		return
	}

	apt.RespondSuccess(w, map[string]interface{}{"deleted": true})
}

func (h *Handler) applyTransition(w http.ResponseWriter, r *http.Request, name string, apply func(*HiringRequest, string) bool) {
	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	hr, err := h.repo.Get(ctx, id)
	if err != nil || hr == nil {
		log.Error("hiring request not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Hiring request not found")
		return
	}

	if !apply(hr, sess.UserID.String()) {
		log.Debug("invalid hiring transition", "transition", name, "status", hr.Status)
		apt.RespondError(w, http.StatusConflict, "Request status does not allow "+name)
		return
	}

	if err := h.repo.Save(ctx, hr); err != nil {
		log.Error("cannot update hiring request", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update hiring request")
		return
	}

	h.publishRequestEvent(ctx, event.EventHiringRequestUpdated, hr)

	links := apt.RESTfulLinksFor(hr)
	apt.RespondSuccess(w, hr, links...)
}

// confirmed enforces the confirm=true gate. Without it, responds with a
// requires_confirmation payload and returns false.
func (h *Handler) confirmed(w http.ResponseWriter, r *http.Request, message string) bool {
	if r.URL.Query().Get("confirm") == "true" {
		return true
	}
	response := map[string]interface{}{
		"requires_confirmation": true,
		"message":               message,
	}
	apt.Respond(w, http.StatusOK, response, nil)
	return false
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

type RequestCreatePayload struct {
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
}

func (h *Handler) decodeCreatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (RequestCreatePayload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return RequestCreatePayload{}, false
	}

	var req RequestCreatePayload
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return RequestCreatePayload{}, false
	}

	return req, true
}

func (h *Handler) publishRequestEvent(ctx context.Context, eventType string, hr *HiringRequest) {
	if h.publisher == nil {
		return
	}
	evt := event.HiringRequestEvent{
		EventType:      eventType,
		OccurredAt:     time.Now().UTC(),
		RequestID:      hr.ID.String(),
		CourierID:      hr.CourierID.String(),
		CourierName:    hr.CourierName,
		RestaurantID:   hr.RestaurantID.String(),
		RestaurantName: hr.RestaurantName,
		Status:         hr.Status,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal hiring event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.HiringTopic, payload); err != nil {
		h.logger.Error("cannot publish hiring event", "error", err, "event_type", eventType)
	}
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
