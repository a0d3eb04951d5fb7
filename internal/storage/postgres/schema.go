package postgres

// The tournament is stored as a single versioned JSONB snapshot row; users
// get their own table so they survive a tournament reset.
const schema = `
CREATE TABLE IF NOT EXISTS tournament (
	id         SMALLINT PRIMARY KEY CHECK (id = 1),
	version    BIGINT NOT NULL,
	snapshot   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL
);
`
