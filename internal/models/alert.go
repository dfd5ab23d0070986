package models

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusPending  AlertStatus = "pending"
	AlertStatusResolved AlertStatus = "resolved"
)

// Alert is a regional disease warning or a reminder with the steps a farmer should take.
type Alert struct {
	ID          string      `db:"id"`
	Title       string      `db:"title"`
	Description string      `db:"description"`
	Severity    Severity    `db:"severity"`
	Status      AlertStatus `db:"status"`
	IssuedOn    string      `db:"issued_on"`
	Actions     []string    `db:"-"`
}

type EmergencyContact struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
}
