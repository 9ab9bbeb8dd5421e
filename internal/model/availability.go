package model

// AvailabilityWindow is a recurring weekly interval during which a
// psychologist accepts bookings. DayOfWeek uses Monday=0 .. Sunday=6.
type AvailabilityWindow struct {
	Base
	PsychologistID int64     `db:"psychologist_id" json:"psychologist_id"`
	DayOfWeek      int       `db:"day_of_week" json:"day_of_week"`
	StartTime      TimeOfDay `db:"start_time" json:"start_time"`
	EndTime        TimeOfDay `db:"end_time" json:"end_time"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}

// Overlaps reports whether two windows collide as half-open intervals
// [start, end): touching endpoints do not overlap.
func (w *AvailabilityWindow) Overlaps(other *AvailabilityWindow) bool {
	return w.StartTime < other.EndTime && other.StartTime < w.EndTime
}

// Contains reports whether an appointment starting at t with the given
// duration fits entirely inside the window.
func (w *AvailabilityWindow) Contains(t TimeOfDay, durationMinutes int) bool {
	return w.StartTime <= t && t.Add(durationMinutes) <= w.EndTime
}

func (w *AvailabilityWindow) Clone() *AvailabilityWindow {
	clone := *w
	return &clone
}

type CreateAvailabilityRequest struct {
	PsychologistID int64  `json:"psychologist_id" binding:"required"`
	DayOfWeek      *int   `json:"day_of_week" binding:"required"`
	StartTime      string `json:"start_time" binding:"required,hhmm"`
	EndTime        string `json:"end_time" binding:"required,hhmm"`
}

type UpdateAvailabilityRequest struct {
	StartTime *string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime   *string `json:"end_time" binding:"omitempty,hhmm"`
	IsActive  *bool   `json:"is_active"`
}
