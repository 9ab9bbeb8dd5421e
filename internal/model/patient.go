package model

type Patient struct {
	Base
	Name  string  `db:"name" json:"name"`
	Email string  `db:"email" json:"email"`
	Phone string  `db:"phone" json:"phone"`
	CPF   *string `db:"cpf" json:"cpf,omitempty"`
}

func (p *Patient) Clone() *Patient {
	clone := *p
	if p.CPF != nil {
		cpf := *p.CPF
		clone.CPF = &cpf
	}
	return &clone
}

type CreatePatientRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email string  `json:"email" binding:"required,email"`
	Phone string  `json:"phone" binding:"required,min=8"`
	CPF   *string `json:"cpf"`
}

type UpdatePatientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,min=8"`
	CPF   *string `json:"cpf"`
}
