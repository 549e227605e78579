package domain

import "time"

type ProfileRole string

const (
	ProfileRoleAdmin ProfileRole = "Admin"
	ProfileRoleUser  ProfileRole = "User"
)

type ProfileStatus string

const (
	ProfileStatusActive    ProfileStatus = "Active"
	ProfileStatusSuspended ProfileStatus = "Suspended"
)

type Profile struct {
	ID           string                  `json:"id"`
	Email        string                  `json:"email"`
	FullName     string                  `json:"full_name"`
	PasswordHash string                  `json:"-"`
	Role         ProfileRole             `json:"role"`
	Status       ProfileStatus           `json:"status"`
	Preferences  NotificationPreferences `json:"notification_preferences"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == ProfileRoleAdmin && p.Status == ProfileStatusActive
}
