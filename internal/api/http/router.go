package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything NewRouter needs to wire the API.
type Handlers struct {
	Auth         *AuthHandler
	Gear         *GearHandler
	Request      *RequestHandler
	Checkin      *CheckinHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Profile      *ProfileHandler
	Admin        *AdminHandler
	Dashboard    *DashboardHandler
	Middleware   *Middleware
	DB           *sql.DB
}

func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(Instrument)

	r.HandleFunc("/healthz", Healthz(h.DB)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	// Authenticated surface.
	auth := api.NewRoute().Subrouter()
	auth.Use(h.Middleware.RequireAuth)

	auth.HandleFunc("/gears", h.Gear.List).Methods(http.MethodGet)
	auth.HandleFunc("/gears/{id}", h.Gear.Get).Methods(http.MethodGet)

	auth.HandleFunc("/requests", h.Request.Submit).Methods(http.MethodPost)
	auth.HandleFunc("/requests", h.Request.List).Methods(http.MethodGet)
	auth.HandleFunc("/requests/{id}", h.Request.Get).Methods(http.MethodGet)
	auth.HandleFunc("/requests/{id}/cancel", h.Request.Cancel).Methods(http.MethodPost)

	auth.HandleFunc("/checkins", h.Checkin.Submit).Methods(http.MethodPost)
	auth.HandleFunc("/checkins", h.Checkin.List).Methods(http.MethodGet)
	auth.HandleFunc("/checkins/notify", h.Checkin.Notify).Methods(http.MethodPost)

	auth.HandleFunc("/car-bookings", h.Booking.Create).Methods(http.MethodPost)
	auth.HandleFunc("/car-bookings", h.Booking.List).Methods(http.MethodGet)
	auth.HandleFunc("/car-bookings/complete", h.Booking.Complete).Methods(http.MethodPost)
	auth.HandleFunc("/calendar/bookings/{id}", h.Booking.Delete).Methods(http.MethodDelete)

	auth.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications", h.Notification.Trigger).Methods(http.MethodPost)
	auth.HandleFunc("/notifications/trigger", h.Notification.Trigger).Methods(http.MethodPost)
	auth.HandleFunc("/notifications/read-all", h.Notification.MarkAllRead).Methods(http.MethodPost)
	auth.HandleFunc("/notifications/login", h.Notification.LoginEvent).Methods(http.MethodPost)
	auth.HandleFunc("/notifications/subscribe", h.Notification.Subscribe).Methods(http.MethodPost)
	auth.HandleFunc("/notifications/{id}/read", h.Notification.MarkRead).Methods(http.MethodPost)

	auth.HandleFunc("/profile", h.Profile.Get).Methods(http.MethodGet)
	auth.HandleFunc("/profile/preferences", h.Profile.UpdatePreferences).Methods(http.MethodPut)

	auth.HandleFunc("/dashboard/counts", h.Dashboard.Counts).Methods(http.MethodGet)
	auth.HandleFunc("/announcements", h.Dashboard.Announcements).Methods(http.MethodGet)
	// Creation is restricted inside the service.
	auth.HandleFunc("/announcements", h.Admin.CreateAnnouncement).Methods(http.MethodPost)

	// Admin surface. The middleware checks the stored role before any handler
	// runs; the services check again before mutating.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.Middleware.RequireAdmin)

	admin.HandleFunc("/gears", h.Gear.Create).Methods(http.MethodPost)
	admin.HandleFunc("/gears", h.Gear.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/gears/{id}", h.Gear.Update).Methods(http.MethodPut)
	admin.HandleFunc("/gears/{id}/retire", h.Gear.Retire).Methods(http.MethodPost)

	admin.HandleFunc("/requests/{id}/approve", h.Request.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/requests/{id}/reject", h.Request.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/checkins/{id}/approve", h.Checkin.Approve).Methods(http.MethodPost)

	admin.HandleFunc("/notifications", h.Admin.ListNotifications).Methods(http.MethodGet)
	admin.HandleFunc("/notifications", h.Admin.CreateNotification).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/{id}", h.Admin.UpdateNotification).Methods(http.MethodPut)
	admin.HandleFunc("/notifications/{id}", h.Admin.DeleteNotification).Methods(http.MethodDelete)

	admin.HandleFunc("/fix-gear-quantities", h.Admin.FixGearQuantities).Methods(http.MethodPost)
	admin.HandleFunc("/announcements/{id}", h.Admin.DeleteAnnouncement).Methods(http.MethodDelete)

	// The booking decision endpoint is exposed under the calendar prefix and
	// accepts both verbs for older clients.
	adminCalendar := api.PathPrefix("/calendar").Subrouter()
	adminCalendar.Use(h.Middleware.RequireAdmin)
	adminCalendar.HandleFunc("/bookings/approve", h.Booking.Decide).Methods(http.MethodPost, http.MethodPut)

	debug := api.PathPrefix("/debug").Subrouter()
	debug.Use(h.Middleware.RequireAdmin)
	debug.HandleFunc("/fix-dashboard-counts", h.Admin.FixDashboardCounts).Methods(http.MethodGet, http.MethodPost)

	return r
}
