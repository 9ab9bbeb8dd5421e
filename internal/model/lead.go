package model

import "time"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

type Lead struct {
	Base
	Name               string     `db:"name" json:"name"`
	Email              string     `db:"email" json:"email"`
	Phone              string     `db:"phone" json:"phone"`
	Source             string     `db:"source" json:"source"`
	Status             LeadStatus `db:"status" json:"status"`
	Notes              string     `db:"notes" json:"notes,omitempty"`
	ConvertedAt        *time.Time `db:"converted_at" json:"converted_at,omitempty"`
	ConvertedPatientID *int64     `db:"converted_patient_id" json:"converted_to_patient_id,omitempty"`
}

func (l *Lead) Clone() *Lead {
	clone := *l
	if l.ConvertedAt != nil {
		at := *l.ConvertedAt
		clone.ConvertedAt = &at
	}
	if l.ConvertedPatientID != nil {
		id := *l.ConvertedPatientID
		clone.ConvertedPatientID = &id
	}
	return &clone
}

type CreateLeadRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone" binding:"required"`
	Source string `json:"source" binding:"required"`
	Notes  string `json:"notes"`
}

type UpdateLeadRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

type LeadContactedRequest struct {
	Notes string `json:"notes"`
}

type LeadLostRequest struct {
	Reason string `json:"reason"`
}

type LeadConvertRequest struct {
	PatientID int64 `json:"patient_id" binding:"required"`
}
