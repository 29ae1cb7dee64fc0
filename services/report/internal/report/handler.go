package report

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

	"github.com/mealmesh/mealmesh/pkg/enums/reportstatus"
	"github.com/mealmesh/mealmesh/pkg/event"
	"github.com/mealmesh/mealmesh/pkg/session"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger    apt.Logger
	config    *apt.Config
	tlm       *telemetry.HTTP
	repo      ProblemReportRepo
	chats     SupportChatRepo
	orders    OrderSource
	publisher events.Publisher
	sse       *SSEHandler
}

type HandlerDeps struct {
	Repo      ProblemReportRepo
	Chats     SupportChatRepo
	Orders    OrderSource
	Publisher events.Publisher
	Hub       *Hub
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
		chats:     hd.Chats,
		orders:    hd.Orders,
		publisher: hd.Publisher,
		sse:       NewSSEHandler(hd.Hub, logger),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.SubmitReport)

		r.Group(func(r chi.Router) {
			r.Use(session.RequireRole(session.RoleAdmin, session.RoleDeveloper))
			r.Get("/", h.ListReports)
			r.Get("/stream", h.sse.ServeHTTP)
			r.Get("/insights", h.GetInsights)
			r.Patch("/{id}/status", h.UpdateStatus)
		})
	})
}

type SubmitReportRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// SubmitReport files a new problem report. Checks run in a fixed order
// so the form always highlights the earliest problem: category, then
// description, then the session.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SubmitReport")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req SubmitReportRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if verr := ValidateIntake(req.Category, req.Description); verr != nil {
		apt.Respond(w, http.StatusBadRequest, map[string]interface{}{
			"message": verr.Message,
			"errors":  []ValidationError{*verr},
		}, nil)
		return
	}

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	report := NewProblemReport()
	report.ReporterID = sess.UserID
	report.ReporterName = sess.Name
	report.ReporterEmail = sess.Email
	report.ReporterRole = sess.Role
	report.Category = req.Category
	report.Description = strings.TrimSpace(req.Description)
	report.BeforeCreate()

	if err := h.repo.Create(ctx, report); err != nil {
		log.Error("cannot create report", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to submit report")
		return
	}

	h.publishReportEvent(ctx, log, event.EventReportSubmitted, report)

	log.Info("report submitted",
		"report_id", report.ID,
		"category", report.Category,
		"reporter_role", report.ReporterRole,
	)

	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, report)
}

// ListReports renders the triage board: free-text search over
// description and reporter identity, plus independent category, status
// and role filters.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListReports")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	reports, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list reports", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	query := r.URL.Query()
	filtered := FilterReports(reports, ReportFilter{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Status:   query.Get("status"),
		Role:     query.Get("role"),
	})

	apt.RespondCollection(w, filtered, "report")
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a report along the pending -> reviewed -> resolved
// flow and records who triaged it.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, _ := session.FromContext(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	var req UpdateStatusRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}
	if reportstatus.ByName(req.Status) == nil {
		apt.RespondError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	report, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("cannot get report", "error", err, "report_id", id)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}
	if report == nil {
		apt.RespondError(w, http.StatusNotFound, "Report not found")
		return
	}

	if !report.MoveTo(req.Status, sess.UserID) {
		apt.RespondError(w, http.StatusConflict, "Report status does not allow this change")
		return
	}

	if err := h.repo.Save(ctx, report); err != nil {
		log.Error("cannot save report", "error", err, "report_id", id)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to update report")
		return
	}

	h.publishReportEvent(ctx, log, event.EventReportStatusChanged, report)

	log.Info("report status updated",
		"report_id", report.ID,
		"status", report.Status,
		"reviewed_by", sess.UserID,
	)

	apt.RespondSuccess(w, report)
}

// GetInsights recomputes the admin aggregation page from scratch over
// orders, reports and support chats.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetInsights")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	window, err := ParseWindow(r.URL.Query().Get("window"), time.Now())
	if err != nil {
		apt.RespondError(w, http.StatusBadRequest, "window must be one of 7d, 30d, all")
		return
	}

	orders, err := h.orders.ListOrders(ctx)
	if err != nil {
		log.Error("cannot fetch orders for insights", "error", err)
		apt.RespondError(w, http.StatusBadGateway, "Order data unavailable")
		return
	}

	reports, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list reports for insights", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to compute insights")
		return
	}

	chats, err := h.chats.List(ctx)
	if err != nil {
		log.Error("cannot list support chats for insights", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Failed to compute insights")
		return
	}

	apt.RespondSuccess(w, ComputeInsights(window, orders, reports, chats))
}

func (h *Handler) publishReportEvent(ctx context.Context, log apt.Logger, eventType string, report *ProblemReport) {
	if h.publisher == nil {
		return
	}

	evt := event.ReportEvent{
		EventType:    eventType,
		OccurredAt:   time.Now().UTC(),
		ReportID:     report.ID.String(),
		ReporterID:   report.ReporterID.String(),
		ReporterName: report.ReporterName,
		Category:     report.Category,
		Status:       report.Status,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error("cannot marshal report event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.ReportsTopic, payload); err != nil {
		log.Error("cannot publish report event", "error", err, "event_type", eventType)
	}
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
