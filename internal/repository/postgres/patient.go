package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/pkg/security"
)

// sealCPF encrypts the CPF for storage when the repository carries an
// encryptor. The column stays text.
func (r *patientRepository) sealCPF(cpf *string) (*string, error) {
	if r.enc == nil || cpf == nil {
		return cpf, nil
	}
	sealed, err := security.SealString(r.enc, *cpf)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt cpf: %w", err)
	}
	return &sealed, nil
}

func (r *patientRepository) openCPF(patient *model.Patient) error {
	if r.enc == nil || patient.CPF == nil {
		return nil
	}
	cpf, err := security.OpenString(r.enc, *patient.CPF)
	if err != nil {
		return fmt.Errorf("failed to decrypt cpf: %w", err)
	}
	patient.CPF = &cpf
	return nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	patient.Stamp(time.Now())
	cpf, err := r.sealCPF(patient.CPF)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO patients (name, email, phone, cpf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		cpf,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT id, name, email, phone, cpf, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, notFound(err, "Patient", id)
	}
	if err := r.openCPF(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	patient.Stamp(time.Now())
	cpf, err := r.sealCPF(patient.CPF)
	if err != nil {
		return err
	}
	query := `
		UPDATE patients
		SET name = $1, email = $2, phone = $3, cpf = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		cpf,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return ensureAffected(res, "Patient", patient.ID)
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return ensureAffected(res, "Patient", id)
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, name, email, phone, cpf, created_at, updated_at
		FROM patients
		ORDER BY id ASC
	`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	for _, patient := range patients {
		if err := r.openCPF(patient); err != nil {
			return nil, err
		}
	}
	return patients, nil
}
