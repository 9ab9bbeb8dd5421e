package model

type Clinic struct {
	Base
	UserID  int64  `db:"user_id" json:"user_id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`
}

func (c *Clinic) Clone() *Clinic {
	clone := *c
	return &clone
}

type CreateClinicRequest struct {
	UserID  int64  `json:"user_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}

type UpdateClinicRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
}
