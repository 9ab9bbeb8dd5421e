package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	user_type     TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS patients (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	cpf        TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS psychologists (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	name        TEXT NOT NULL,
	crp         TEXT NOT NULL,
	specialty   TEXT NOT NULL,
	themes      TEXT[] NOT NULL DEFAULT '{}',
	bio         TEXT NOT NULL DEFAULT '',
	hourly_rate DOUBLE PRECISION NOT NULL,
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS clinics (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL,
	phone      TEXT NOT NULL,
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id                   BIGSERIAL PRIMARY KEY,
	name                 TEXT NOT NULL,
	email                TEXT NOT NULL,
	phone                TEXT NOT NULL,
	source               TEXT NOT NULL,
	status               TEXT NOT NULL,
	notes                TEXT NOT NULL DEFAULT '',
	converted_at         TIMESTAMPTZ,
	converted_patient_id BIGINT,
	created_at           TIMESTAMPTZ NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS availabilities (
	id              BIGSERIAL PRIMARY KEY,
	psychologist_id BIGINT NOT NULL,
	day_of_week     SMALLINT NOT NULL,
	start_time      TEXT NOT NULL,
	end_time        TEXT NOT NULL,
	is_active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_availabilities_psychologist
	ON availabilities (psychologist_id, day_of_week);

CREATE TABLE IF NOT EXISTS appointments (
	id                  BIGSERIAL PRIMARY KEY,
	patient_id          BIGINT NOT NULL,
	psychologist_id     BIGINT NOT NULL,
	date                DATE NOT NULL,
	time                TEXT NOT NULL,
	duration_minutes    INT NOT NULL,
	status              TEXT NOT NULL,
	notes               TEXT NOT NULL DEFAULT '',
	cancellation_reason TEXT,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_appointments_psychologist_date
	ON appointments (psychologist_id, date);
`

// EnsureSchema creates the tables the repositories expect.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
