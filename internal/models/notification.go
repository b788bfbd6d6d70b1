package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind names the scheduled email types.
type NotificationKind string

const (
	NotificationLowStock  NotificationKind = "low_stock"
	NotificationDashboard NotificationKind = "dashboard_summary"
)

// DeliveryStatus is the outcome of one dispatch to one tenant.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliverySkipped DeliveryStatus = "skipped"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Delivery is a row of the notification delivery log.
type Delivery struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	RunID     uuid.UUID        `json:"run_id" db:"run_id"`
	TenantID  string           `json:"tenant_id" db:"tenant_id"`
	Kind      NotificationKind `json:"kind" db:"kind"`
	Recipient string           `json:"recipient" db:"recipient"`
	Status    DeliveryStatus   `json:"status" db:"status"`
	Error     *string          `json:"error,omitempty" db:"error"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// EmailMessage is what the dispatcher hands to the email transport.
type EmailMessage struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}
