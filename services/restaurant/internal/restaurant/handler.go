package restaurant

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
	repo   RestaurantRepo
}

func NewHandler(repo RestaurantRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
		repo:   repo,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", h.ListRestaurants)
		r.Post("/", h.CreateRestaurant)
		r.Get("/{id}", h.GetRestaurant)
		r.Put("/{id}", h.UpdateRestaurant)
	})

	r.Get("/legal/{slug}", h.GetLegalPage)
}

// ListRestaurants returns the directory, optionally narrowed to the
// restaurants referred by one admin. The order service's scope cache
// depends on the referred_by lookup.
func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListRestaurants")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var restaurants []*Restaurant
	var err error

	if referrer := r.URL.Query().Get("referred_by"); referrer != "" {
		adminID, parseErr := uuid.Parse(referrer)
		if parseErr != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid referred_by ID")
			return
		}
		restaurants, err = h.repo.ListByReferrer(ctx, adminID)
	} else {
		restaurants, err = h.repo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list restaurants", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to list restaurants")
		return
	}

	apt.RespondCollection(w, restaurants, "restaurant")
}

func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetRestaurant")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	restaurant, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("cannot get restaurant", "error", err, "restaurant_id", id)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to get restaurant")
		return
	}
	if restaurant == nil {
		apt.RespondError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	apt.RespondSuccess(w, restaurant, apt.RESTfulLinksFor(restaurant)...)
}

type RestaurantPayload struct {
	Name          string     `json:"name"`
	City          string     `json:"city,omitempty"`
	LogoURL       string     `json:"logo_url,omitempty"`
	ReferredBy    *uuid.UUID `json:"referred_by,omitempty"`
	OpenForOrders *bool      `json:"open_for_orders,omitempty"`
	Tier          string     `json:"tier,omitempty"`
	LicenseStatus string     `json:"license_status,omitempty"`
}

func (h *Handler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateRestaurant")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req RestaurantPayload
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		apt.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	restaurant := NewRestaurant()
	restaurant.Name = strings.TrimSpace(req.Name)
	restaurant.City = req.City
	restaurant.LogoURL = req.LogoURL
	restaurant.ReferredBy = req.ReferredBy
	if req.OpenForOrders != nil {
		restaurant.OpenForOrders = *req.OpenForOrders
	}
	if req.Tier != "" {
		restaurant.Tier = req.Tier
	}
	if req.LicenseStatus != "" {
		restaurant.LicenseStatus = req.LicenseStatus
	}
	restaurant.BeforeCreate()

	if err := h.repo.Create(ctx, restaurant); err != nil {
		log.Error("cannot create restaurant", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}

	log.Info("restaurant created", "restaurant_id", restaurant.ID, "name", restaurant.Name)

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, restaurant, apt.RESTfulLinksFor(restaurant)...)
}

func (h *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateRestaurant")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	var req RestaurantPayload
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	restaurant, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("cannot get restaurant", "error", err, "restaurant_id", id)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to get restaurant")
		return
	}
	if restaurant == nil {
		apt.RespondError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		restaurant.Name = name
	}
	if req.City != "" {
		restaurant.City = req.City
	}
	if req.LogoURL != "" {
		restaurant.LogoURL = req.LogoURL
	}
	if req.ReferredBy != nil {
		restaurant.ReferredBy = req.ReferredBy
	}
	if req.OpenForOrders != nil {
		restaurant.OpenForOrders = *req.OpenForOrders
	}
	if req.Tier != "" {
		restaurant.Tier = req.Tier
	}
	if req.LicenseStatus != "" {
		restaurant.LicenseStatus = req.LicenseStatus
	}
	restaurant.UpdatedAt = time.Now()

	if err := h.repo.Save(ctx, restaurant); err != nil {
		log.Error("cannot save restaurant", "error", err, "restaurant_id", id)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to update restaurant")
		return
	}

	apt.RespondSuccess(w, restaurant, apt.RESTfulLinksFor(restaurant)...)
}

// GetLegalPage serves the static terms and privacy documents.
func (h *Handler) GetLegalPage(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetLegalPage")
	defer finish()

	page := LegalPageBySlug(chi.URLParam(r, "slug"))
	if page == nil {
		apt.RespondError(w, http.StatusNotFound, "Page not found")
		return
	}

	apt.RespondSuccess(w, page)
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
