package domain

import "time"

type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

type EventKind string

const (
	EventRequestCreated   EventKind = "request_created"
	EventRequestApproved  EventKind = "request_approved"
	EventRequestRejected  EventKind = "request_rejected"
	EventCheckinSubmitted EventKind = "checkin_submitted"
	EventCheckinApproved  EventKind = "checkin_approved"
	EventBookingApproved  EventKind = "booking_approved"
	EventBookingCompleted EventKind = "booking_completed"
	EventAnnouncement     EventKind = "announcement"
	EventLogin            EventKind = "login"
)

var AllChannels = []Channel{ChannelInApp, ChannelEmail, ChannelPush}

var AllEventKinds = []EventKind{
	EventRequestCreated, EventRequestApproved, EventRequestRejected,
	EventCheckinSubmitted, EventCheckinApproved,
	EventBookingApproved, EventBookingCompleted,
	EventAnnouncement, EventLogin,
}

// NotificationPreferences is a typed channel-by-event opt-in matrix. Missing
// entries fall back to the global defaults.
type NotificationPreferences map[Channel]map[EventKind]bool

// DefaultPreferences returns the global default matrix: everything on except
// email and push for login events.
func DefaultPreferences() NotificationPreferences {
	prefs := NotificationPreferences{}
	for _, ch := range AllChannels {
		prefs[ch] = map[EventKind]bool{}
		for _, ev := range AllEventKinds {
			prefs[ch][ev] = true
		}
	}
	prefs[ChannelEmail][EventLogin] = false
	prefs[ChannelPush][EventLogin] = false
	return prefs
}

// Enabled resolves one cell of the matrix, defaulting missing cells.
func (p NotificationPreferences) Enabled(ch Channel, ev EventKind) bool {
	if p == nil {
		return DefaultPreferences().Enabled(ch, ev)
	}
	events, ok := p[ch]
	if !ok {
		return DefaultPreferences()[ch][ev]
	}
	enabled, ok := events[ev]
	if !ok {
		return DefaultPreferences()[ch][ev]
	}
	return enabled
}

// Validate rejects unknown channels or event kinds. Preferences are persisted
// as JSONB, so bad keys would otherwise be stored silently.
func (p NotificationPreferences) Validate() error {
	known := func(ch Channel) bool {
		for _, c := range AllChannels {
			if c == ch {
				return true
			}
		}
		return false
	}
	knownEvent := func(ev EventKind) bool {
		for _, e := range AllEventKinds {
			if e == ev {
				return true
			}
		}
		return false
	}
	for ch, events := range p {
		if !known(ch) {
			return Errorf(ErrValidation, "unknown notification channel %q", ch)
		}
		for ev := range events {
			if !knownEvent(ev) {
				return Errorf(ErrValidation, "unknown notification event %q", ev)
			}
		}
	}
	return nil
}

type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"is_read"`
	Category  string            `json:"category"`
	Priority  string            `json:"priority"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Link      string            `json:"link,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type PushQueueStatus string

const (
	PushQueueStatusPending PushQueueStatus = "Pending"
	PushQueueStatusSent    PushQueueStatus = "Sent"
	PushQueueStatusFailed  PushQueueStatus = "Failed"
)

type PushQueueItem struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Payload     []byte          `json:"payload"`
	Status      PushQueueStatus `json:"status"`
	Attempts    int32           `json:"attempts"`
	LastError   string          `json:"last_error"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

// PushSubscription is a browser web-push endpoint registered by a user.
type PushSubscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}
