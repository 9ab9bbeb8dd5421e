package model

type Psychologist struct {
	Base
	UserID     int64    `db:"user_id" json:"user_id"`
	Name       string   `db:"name" json:"name"`
	CRP        string   `db:"crp" json:"crp"`
	Specialty  string   `db:"specialty" json:"specialty"`
	Themes     []string `db:"themes" json:"themes"`
	Bio        string   `db:"bio" json:"bio"`
	HourlyRate float64  `db:"hourly_rate" json:"hourly_rate"`
	IsActive   bool     `db:"is_active" json:"is_active"`
}

func (p *Psychologist) Clone() *Psychologist {
	clone := *p
	if p.Themes != nil {
		clone.Themes = append([]string(nil), p.Themes...)
	}
	return &clone
}

type CreatePsychologistRequest struct {
	UserID     int64    `json:"user_id" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	CRP        string   `json:"crp" binding:"required,crp"`
	Specialty  string   `json:"specialty" binding:"required"`
	HourlyRate float64  `json:"hourly_rate" binding:"required"`
	Themes     []string `json:"themes"`
	Bio        string   `json:"bio"`
}

type UpdatePsychologistRequest struct {
	Name       *string  `json:"name"`
	Specialty  *string  `json:"specialty"`
	Themes     []string `json:"themes"`
	Bio        *string  `json:"bio"`
	HourlyRate *float64 `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}
