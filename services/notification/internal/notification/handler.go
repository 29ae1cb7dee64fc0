package notification

import (
	"net/http"
	"sort"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/session"
)

type Handler struct {
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
	repo   NotificationRepo
	sse    *SSEHandler
}

type HandlerDeps struct {
	Repo NotificationRepo
	SSE  *SSEHandler
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
		repo:   hd.Repo,
		sse:    hd.SSE,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Post("/read-all", h.MarkAllRead)
		r.Patch("/{id}/read", h.MarkRead)
		r.Delete("/{id}", h.DeleteNotification)
		if h.sse != nil {
			r.Get("/stream", h.sse.ServeHTTP)
		}
	})
}

// NotificationView adds the presentation fields the list renders from
// the type tag and timestamp.
type NotificationView struct {
	*Notification
	Icon         string `json:"icon"`
	RelativeTime string `json:"relative_time"`
}

func viewOf(n *Notification, now time.Time) NotificationView {
	return NotificationView{
		Notification: n,
		Icon:         IconFor(n.Type),
		RelativeTime: RelativeTime(n.CreatedAt, now),
	}
}

// ListNotifications returns the recipient's notifications, newest first.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListNotifications")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	recipientID, ok := h.resolveRecipient(w, r)
	if !ok {
		return
	}

	list, err := h.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		log.Error("error retrieving notifications", "error", err, "recipient_id", recipientID)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve notifications")
		return
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	now := time.Now()
	views := make([]NotificationView, 0, len(list))
	unread := 0
	for _, n := range list {
		views = append(views, viewOf(n, now))
		if !n.Read {
			unread++
		}
	}

	response := map[string]interface{}{
		"notifications": views,
		"unread_count":  unread,
	}
	apt.Respond(w, http.StatusOK, response, nil)
}

// MarkRead flips one notification to read. Marking an already-read
// notification is a no-op that still reports success.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkRead")
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

	n, err := h.repo.Get(ctx, id)
	if err != nil || n == nil {
		log.Error("notification not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Notification not found")
		return
	}

	if n.RecipientID != sess.UserID && !sess.IsPrivileged() {
		apt.RespondError(w, http.StatusForbidden, "Not your notification")
		return
	}

	if n.MarkAsRead() {
		if err := h.repo.Save(ctx, n); err != nil {
			log.Error("cannot mark notification read", "error", err, "id", id.String())
			apt.RespondError(w, http.StatusInternalServerError, "Could not update notification")
			return
		}
	}

	apt.RespondSuccess(w, n)
}

// MarkAllRead marks every unread notification for the caller. Each write
// is independent; failures are reported per id and the successful writes
// are kept.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkAllRead")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	sess, ok := session.FromContext(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	unread, err := h.repo.ListUnreadByRecipient(ctx, sess.UserID)
	if err != nil {
		log.Error("error retrieving unread notifications", "error", err, "recipient_id", sess.UserID)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve notifications")
		return
	}

	marked := 0
	failed := map[string]string{}
	for _, n := range unread {
		if !n.MarkAsRead() {
			continue
		}
		if err := h.repo.Save(ctx, n); err != nil {
			log.Error("cannot mark notification read", "error", err, "id", n.ID.String())
			failed[n.ID.String()] = err.Error()
			continue
		}
		marked++
	}

	response := map[string]interface{}{
		"marked": marked,
		"failed": failed,
	}
	if len(failed) > 0 {
		apt.Respond(w, http.StatusMultiStatus, response, nil)
		return
	}
	apt.Respond(w, http.StatusOK, response, nil)
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteNotification")
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

	n, err := h.repo.Get(ctx, id)
	if err != nil || n == nil {
		log.Error("notification not found", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Notification not found")
		return
	}

	if n.RecipientID != sess.UserID && !sess.IsPrivileged() {
		apt.RespondError(w, http.StatusForbidden, "Not your notification")
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Error("cannot delete notification", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete notification")
		return
	}

	apt.RespondSuccess(w, map[string]interface{}{"deleted": true})
}

func (h *Handler) resolveRecipient(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}

	if param := r.URL.Query().Get("recipient_id"); param != "" {
		if sess.Role != session.RoleAdmin && sess.Role != session.RoleDeveloper {
			apt.RespondError(w, http.StatusForbidden, "Insufficient role")
			return uuid.Nil, false
		}
		parsed, err := uuid.Parse(param)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid recipient_id")
			return uuid.Nil, false
		}
		return parsed, true
	}

	return sess.UserID, true
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

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
