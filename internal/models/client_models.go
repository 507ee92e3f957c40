package models

import "time"

// Client represents a monitored customer owned by a user. Every read and
// write of a client row is scoped by (id, user_id); a client is never
// visible outside its owner.
type Client struct {
	ID                int64      `json:"id" db:"id"`
	ClientName        string     `json:"client_name" db:"client_name"`
	UserID            int64      `json:"user_id" db:"user_id"`
	PlannedDate       *time.Time `json:"planned_date" db:"planned_date"`
	PreviousMonthDate *time.Time `json:"previous_month_date" db:"previous_month_date"`
	IsCompleted       bool       `json:"is_completed" db:"is_completed"`
	IsLurvSent        bool       `json:"is_lurv_sent" db:"is_lurv_sent"`
	Phone             *string    `json:"phone" db:"phone"`
	Email             *string    `json:"email" db:"email"`
	Notes             *string    `json:"notes" db:"notes"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`

	// Derived via LEFT JOIN over client_services/services.
	Services   []string `json:"services"`
	ServiceIDs []int64  `json:"service_ids"`
}

// ClientPatch carries the updatable client columns as presence-aware
// fields. An unset field leaves the column untouched; a set-but-null
// field clears it. The repository builds the SET list from this.
type ClientPatch struct {
	PlannedDate Optional[time.Time]
	IsCompleted Optional[bool]
	IsLurvSent  Optional[bool]
	Phone       Optional[string]
	Email       Optional[string]
	Notes       Optional[string]
}

// IsEmpty reports whether no recognized column is present in the patch.
func (p ClientPatch) IsEmpty() bool {
	return !p.PlannedDate.Set && !p.IsCompleted.Set && !p.IsLurvSent.Set &&
		!p.Phone.Set && !p.Email.Set && !p.Notes.Set
}
