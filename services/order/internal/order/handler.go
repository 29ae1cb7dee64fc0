package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
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
	orderRepo OrderRepo
	scopes    *RestaurantScopeCache
	publisher events.Publisher
}

type HandlerDeps struct {
	OrderRepo  OrderRepo
	ScopeCache *RestaurantScopeCache
	Publisher  events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
		orderRepo: hd.OrderRepo,
		scopes:    hd.ScopeCache,
		publisher: hd.Publisher,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/cart/quote", h.QuoteCart)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/mine", h.ListMyOrders)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/ratings", h.RateOrder)

		r.Group(func(r chi.Router) {
			r.Use(session.RequireRole(session.RoleAdmin, session.RoleDeveloper))
			r.Get("/", h.ListOrders)
			r.Get("/buckets", h.ListOrderBuckets)
			r.Put("/{id}", h.UpdateOrderStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(session.RequireRole(session.RoleDeveloper))
			r.Get("/debug", h.DebugListOrders)
		})
	})

	// Internal surface for other services; the gateway never routes
	// /internal/* so no session gate applies.
	r.Get("/internal/orders", h.ExportOrders)
}

// QuoteCart prices a transient cart. No authentication: the quote is a
// pure function of the submitted items.
func (h *Handler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.QuoteCart")
	defer finish()

	log := h.log(r)

	req, ok := h.decodeCartQuotePayload(w, r, log)
	if !ok {
		return
	}

	apt.RespondSuccess(w, QuoteCart(req.Items))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	req, ok := h.decodeOrderCreatePayload(w, r, log)
	if !ok {
		return
	}

	if req.RestaurantID == uuid.Nil {
		log.Debug("missing restaurant id in create order request")
		apt.RespondError(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}
	if len(req.Items) == 0 {
		log.Debug("empty item list in create order request")
		apt.RespondError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	o := NewOrder()
	o.CustomerID = sess.UserID
	o.RestaurantID = req.RestaurantID
	o.RestaurantName = req.RestaurantName
	o.Address = req.Address
	o.Items = req.Items
	o.Total = o.ItemsTotal()
	o.CreatedBy = sess.UserID.String()
	o.BeforeCreate()

	if err := h.orderRepo.Create(ctx, o); err != nil {
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	h.publishOrderCreated(ctx, o)

	links := apt.RESTfulLinksFor(o)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, o, links...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if o == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(o)
	apt.RespondSuccess(w, o, links...)
}

// ListOrders returns the orders the caller may monitor, newest first. A
// status query param narrows the store query before the role filter runs.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)

	orders, ok := h.loadVisibleOrders(w, r, log)
	if !ok {
		return
	}

	apt.RespondCollection(w, orders, "order")
}

// ListMyOrders returns the caller's own order history, newest first.
// Any authenticated role may call it; the scope is always the session
// user.
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMyOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.orderRepo.ListByCustomer(ctx, sess.UserID)
	if err != nil {
		log.Error("cannot list customer orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

// ListOrderBuckets returns the caller-visible orders partitioned by
// status for the monitoring board.
func (h *Handler) ListOrderBuckets(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrderBuckets")
	defer finish()

	log := h.log(r)

	orders, ok := h.loadVisibleOrders(w, r, log)
	if !ok {
		return
	}

	apt.RespondSuccess(w, BucketByStatus(orders))
}

func (h *Handler) loadVisibleOrders(w http.ResponseWriter, r *http.Request, log apt.Logger) ([]*Order, bool) {
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	status := r.URL.Query().Get("status")

	var orders []*Order
	var err error
	if status != "" {
		orders, err = h.orderRepo.ListByStatus(ctx, status)
	} else {
		orders, err = h.orderRepo.List(ctx)
	}
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return nil, false
	}

	permitted := map[uuid.UUID]bool{}
	if !sess.IsPrivileged() && h.scopes != nil {
		permitted, err = h.scopes.Ensure(ctx, sess.UserID)
		if err != nil {
			log.Error("cannot resolve restaurant scope", "error", err, "admin_id", sess.UserID.String())
			apt.RespondError(w, http.StatusInternalServerError, "Could not resolve restaurant scope")
			return nil, false
		}
	}

	visible := VisibleTo(orders, sess, permitted)
	SortByNewest(visible)
	return visible, true
}

// DebugListOrders is the developer view. When the store refuses the
// sorted query because its index is missing, it retries unsorted and
// marks the response degraded instead of failing outright.
func (h *Handler) DebugListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DebugListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	degraded := false
	orders, err := h.orderRepo.ListSorted(ctx)
	if err != nil {
		if !isMissingIndexError(err) {
			log.Error("error retrieving orders", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
			return
		}
		log.Info("sorted order query degraded, retrying unsorted", "error", err)
		degraded = true
		orders, err = h.orderRepo.List(ctx)
		if err != nil {
			log.Error("error retrieving orders", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
			return
		}
	}

	response := map[string]interface{}{
		"orders":   orders,
		"count":    len(orders),
		"degraded": degraded,
	}
	apt.Respond(w, http.StatusOK, response, nil)
}

// ExportOrders hands the full order set to sibling services (the report
// service aggregates over it). Unscoped on purpose; this route is not
// reachable through the gateway.
func (h *Handler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ExportOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	orders, err := h.orderRepo.List(ctx)
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "order")
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := h.orderRepo.Get(ctx, id)
	if err != nil || o == nil {
		log.Error("order not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	req, ok := h.decodeOrderUpdatePayload(w, r, log)
	if !ok {
		return
	}

	oldStatus := o.Status
	if !o.SetStatus(req.Status) {
		log.Debug("invalid status", "status", req.Status)
		apt.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.orderRepo.Save(ctx, o); err != nil {
		log.Error("cannot update order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	h.publishStatusChange(ctx, o, oldStatus)

	links := apt.RESTfulLinksFor(o)
	apt.RespondSuccess(w, o, links...)
}

// RateOrder records the customer's rating of the restaurant or the
// courier for a delivered order.
func (h *Handler) RateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RateOrder")
	defer finish()

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

	o, err := h.orderRepo.Get(ctx, id)
	if err != nil || o == nil {
		log.Error("order not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if o.CustomerID != sess.UserID {
		apt.RespondError(w, http.StatusForbidden, "Only the ordering customer may rate")
		return
	}

	req, ok := h.decodeRatingPayload(w, r, log)
	if !ok {
		return
	}

	if req.Stars < 1 || req.Stars > 5 {
		log.Debug("invalid star rating", "stars", req.Stars)
		apt.RespondError(w, http.StatusBadRequest, "stars must be between 1 and 5")
		return
	}

	switch req.Party {
	case "restaurant":
		o.RateRestaurant(req.Stars, req.Comment)
	case "courier":
		if o.CourierID == nil {
			apt.RespondError(w, http.StatusBadRequest, "Order has no courier to rate")
			return
		}
		o.RateCourier(req.Stars, req.Comment)
	default:
		log.Debug("invalid rating party", "party", req.Party)
		apt.RespondError(w, http.StatusBadRequest, "party must be restaurant or courier")
		return
	}

	if err := h.orderRepo.Save(ctx, o); err != nil {
		log.Error("cannot save rating", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not save rating")
		return
	}

	links := apt.RESTfulLinksFor(o)
	apt.RespondSuccess(w, o, links...)
}

// Helper methods

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

// missingIndexMarkers are the server phrasings for a query that needs an
// index it does not have, including the in-memory sort overflow that a
// sorted find without one runs into.
var missingIndexMarkers = []string{
	"index not found",
	"no index found",
	"add an index",
	"sort exceeded memory limit",
}

// isMissingIndexError sniffs the store error text for the missing-index
// failure mode; the driver gives no typed error for it. The match is
// deliberately narrow so unrelated errors mentioning an index (duplicate
// key violations for one) do not trigger the degraded retry.
func isMissingIndexError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	for _, marker := range missingIndexMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Payload decoders

type CartQuoteRequest struct {
	Items []CartItem `json:"items"`
}

type OrderCreateRequest struct {
	RestaurantID   uuid.UUID   `json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name"`
	Address        string      `json:"address"`
	Items          []OrderItem `json:"items"`
}

type OrderUpdateRequest struct {
	Status string `json:"status"`
}

type RatingRequest struct {
	Party   string `json:"party"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

func (h *Handler) decodeCartQuotePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (CartQuoteRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return CartQuoteRequest{}, false
	}

	var req CartQuoteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return CartQuoteRequest{}, false
	}

	return req, true
}

func (h *Handler) decodeOrderCreatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderCreateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderCreateRequest{}, false
	}

	var req OrderCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderCreateRequest{}, false
	}

	return req, true
}

func (h *Handler) decodeOrderUpdatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderUpdateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderUpdateRequest{}, false
	}

	var req OrderUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderUpdateRequest{}, false
	}

	return req, true
}

func (h *Handler) decodeRatingPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (RatingRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return RatingRequest{}, false
	}

	var req RatingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return RatingRequest{}, false
	}

	return req, true
}

// Event publication

func (h *Handler) publishOrderCreated(ctx context.Context, o *Order) {
	if h.publisher == nil {
		return
	}
	evt := event.OrderStatusChangedEvent{
		EventType:      event.EventOrderCreated,
		OccurredAt:     time.Now().UTC(),
		OrderID:        o.ID.String(),
		NewStatus:      o.Status,
		RestaurantID:   o.RestaurantID.String(),
		RestaurantName: o.RestaurantName,
		CustomerID:     o.CustomerID.String(),
	}
	h.publishOrderEvent(ctx, evt)
}

func (h *Handler) publishStatusChange(ctx context.Context, o *Order, oldStatus string) {
	if h.publisher == nil {
		return
	}
	evt := event.OrderStatusChangedEvent{
		EventType:      event.EventOrderStatusChanged,
		OccurredAt:     time.Now().UTC(),
		OrderID:        o.ID.String(),
		OldStatus:      oldStatus,
		NewStatus:      o.Status,
		RestaurantID:   o.RestaurantID.String(),
		RestaurantName: o.RestaurantName,
		CustomerID:     o.CustomerID.String(),
	}
	if o.CourierID != nil {
		evt.CourierID = o.CourierID.String()
		evt.CourierName = o.CourierName
	}
	h.publishOrderEvent(ctx, evt)
}

func (h *Handler) publishOrderEvent(ctx context.Context, evt event.OrderStatusChangedEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order event", "error", err, "event_type", evt.EventType)
	}
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
