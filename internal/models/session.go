package models

import "time"

// Session status values. A session is created active and moves to
// completed exactly once; there is no transition back.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// Payment methods accepted at completion.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Session represents one charging event at a platform, from plug-in to payment.
// Completion fields (EndTime, EndEmployeeID, KWh, DurationMinutes, Amount,
// PaymentMethod, ScreenImageURL) are populated only when Status is completed.
type Session struct {
	ID              string     `db:"id" json:"id"`
	StartTime       time.Time  `db:"start_time" json:"startTime"`
	EndTime         *time.Time `db:"end_time" json:"endTime,omitempty"`
	StartEmployeeID string     `db:"start_employee_id" json:"startEmployeeId"`
	EndEmployeeID   *string    `db:"end_employee_id" json:"endEmployeeId,omitempty"`
	Station         string     `db:"station" json:"station"`
	Platform        int        `db:"platform" json:"platform"`
	VehicleType     string     `db:"vehicle_type" json:"vehicleType"`
	VehicleImageURL string     `db:"vehicle_image_url" json:"vehicleImageUrl,omitempty"`
	ScreenImageURL  string     `db:"screen_image_url" json:"screenImageUrl,omitempty"`
	KWh             float64    `db:"kwh" json:"kwh,omitempty"`
	DurationMinutes int        `db:"duration_minutes" json:"durationMinutes,omitempty"`
	Amount          float64    `db:"amount" json:"amount"`
	PaymentMethod   string     `db:"payment_method" json:"paymentMethod,omitempty"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}
