package events

import "time"

// Event types
const (
	TransactionCompleted       = "transaction.completed"
	TransactionFailed          = "transaction.failed"
	TransactionPendingApproval = "transaction.pending_approval"
	TransactionApproved        = "transaction.approved"
	TransactionRejected        = "transaction.rejected"
	AccountOpened              = "account.opened"
	AccountStateChanged        = "account.state_changed"
	InterestAccrued            = "interest.accrued"
)

// Stream names
const (
	TransactionEventsStream = "transaction.events"
	AccountEventsStream     = "account.events"
)

// Target roles for notification routing.
const (
	RoleCustomer = "customer"
	RoleTeller   = "teller"
	RoleManager  = "manager"
)

// Notification is the event envelope delivered to the notification sink.
// Delivery is fire-and-forget; it never blocks or fails transaction
// processing.
type Notification struct {
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	TransactionID string    `json:"transactionId,omitempty"`
	TargetRole    string    `json:"targetRole"`
	Timestamp     time.Time `json:"timestamp"`
}
