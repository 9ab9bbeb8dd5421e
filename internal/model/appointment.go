package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment duration bounds, in minutes.
const (
	MinAppointmentDuration = 15
	MaxAppointmentDuration = 180

	// DefaultAppointmentDuration is used when a booking request omits one.
	DefaultAppointmentDuration = 60

	// SlotStep is the fixed granularity of the available-slot grid, in
	// minutes, regardless of the requested duration.
	SlotStep = 15
)

type Appointment struct {
	Base
	PatientID          int64             `db:"patient_id" json:"patient_id"`
	PsychologistID     int64             `db:"psychologist_id" json:"psychologist_id"`
	Date               Date              `db:"date" json:"date"`
	Time               TimeOfDay         `db:"time" json:"time"`
	DurationMinutes    int               `db:"duration_minutes" json:"duration"`
	Status             AppointmentStatus `db:"status" json:"status"`
	Notes              string            `db:"notes" json:"notes,omitempty"`
	CancellationReason *string           `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
}

// Terminal reports whether the appointment is in an absorbing status.
func (a *Appointment) Terminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

func (a *Appointment) Clone() *Appointment {
	clone := *a
	if a.CancellationReason != nil {
		reason := *a.CancellationReason
		clone.CancellationReason = &reason
	}
	return &clone
}

type ScheduleAppointmentRequest struct {
	PatientID      int64  `json:"patient_id" binding:"required"`
	PsychologistID int64  `json:"psychologist_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Duration       int    `json:"duration"`
	Notes          string `json:"notes" binding:"max=1000"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

type AvailableSlotsRequest struct {
	PsychologistID int64  `json:"psychologist_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Duration       int    `json:"duration"`
}
