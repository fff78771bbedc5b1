package db

import (
	"context"
	"database/sql"
)

type DB struct {
	*sql.DB
}

const portalMigration = `
CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    username varchar(50) NOT NULL,
    email varchar(100) NOT NULL,
    password_hash varchar(255) NOT NULL,
    full_name varchar(100),
    phone_number varchar(15),
    address text,
    profile_picture varchar(255),
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS users_username_unique
ON users (username);

CREATE TABLE IF NOT EXISTS hospitals (
    id bigserial PRIMARY KEY,
    name varchar(100) NOT NULL,
    address text NOT NULL,
    phone_number varchar(15),
    email varchar(100),
    latitude numeric(10,7),
    longitude numeric(10,7),
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS medicines (
    id bigserial PRIMARY KEY,
    name varchar(100) NOT NULL UNIQUE,
    description text,
    uses text,
    side_effects text,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reports (
    id bigserial PRIMARY KEY,
    user_id bigint REFERENCES users(id) ON DELETE CASCADE,
    report_type varchar(20) NOT NULL,
    description text NOT NULL,
    status varchar(20) NOT NULL DEFAULT 'Pending',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);
`

// RunPortalMigration applies the idempotent baseline schema.
func RunPortalMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, portalMigration)
	return err
}
