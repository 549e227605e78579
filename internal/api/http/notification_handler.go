package http

import (
	"net/http"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notifySvc service.NotificationService
	pushSvc   service.PushService
}

func NewNotificationHandler(notifySvc service.NotificationService, pushSvc service.PushService) *NotificationHandler {
	return &NotificationHandler{notifySvc: notifySvc, pushSvc: pushSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	userID := UserIDFromContext(r.Context())

	notifications, total, err := h.notifySvc.GetNotifications(r.Context(), userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	unread, err := h.notifySvc.UnreadCount(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notifySvc.MarkAsRead(r.Context(), UserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifySvc.MarkAllAsRead(r.Context(), UserIDFromContext(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, nil, nil)
}

type triggerBody struct {
	Kind         string            `json:"kind" validate:"required"`
	TargetUserID string            `json:"target_user_id"`
	NotifyAdmins bool              `json:"notify_admins"`
	Title        string            `json:"title" validate:"required"`
	Message      string            `json:"message" validate:"required"`
	Category     string            `json:"category"`
	Priority     string            `json:"priority"`
	Link         string            `json:"link"`
	Metadata     map[string]string `json:"metadata"`
}

// Trigger fans an event out on behalf of the caller. The in-app write is the
// primary outcome; email and push failures come back as diagnostics.
func (h *NotificationHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var body triggerBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	target := body.TargetUserID
	if target == "" && !body.NotifyAdmins {
		target = UserIDFromContext(r.Context())
	}
	result, err := h.notifySvc.Dispatch(r.Context(), service.Event{
		Kind:         domain.EventKind(body.Kind),
		TargetUserID: target,
		NotifyAdmins: body.NotifyAdmins,
		Title:        body.Title,
		Message:      body.Message,
		Category:     body.Category,
		Priority:     body.Priority,
		Link:         body.Link,
		Metadata:     body.Metadata,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, result, result.Errors)
}

// LoginEvent records a login notification for the caller. Email and push stay
// quiet under the default preferences.
func (h *NotificationHandler) LoginEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.notifySvc.Dispatch(r.Context(), service.Event{
		Kind:         domain.EventLogin,
		TargetUserID: UserIDFromContext(r.Context()),
		Title:        "New Login",
		Message:      "A new login to your account was detected",
		Category:     "security",
		Priority:     "low",
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, result, result.Errors)
}

type subscribeBody struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var body subscribeBody
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(body); err != nil {
		respondError(w, err)
		return
	}

	sub := &domain.PushSubscription{
		UserID:   UserIDFromContext(r.Context()),
		Endpoint: body.Endpoint,
		P256dh:   body.Keys.P256dh,
		Auth:     body.Keys.Auth,
	}
	if err := h.pushSvc.Subscribe(r.Context(), sub); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, sub, nil)
}
