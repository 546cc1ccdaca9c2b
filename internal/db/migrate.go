package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate aplica el esquema de forma idempotente al arrancar.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		company TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		spotlight_pin TEXT NOT NULL DEFAULT '',
		skills TEXT[] NOT NULL DEFAULT '{}',
		youtube TEXT NOT NULL DEFAULT '',
		twitter TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		linkedin TEXT NOT NULL DEFAULT '',
		facebook TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS experiences (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		seq BIGSERIAL,
		title TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL,
		director TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		from_date TIMESTAMPTZ NOT NULL,
		to_date TIMESTAMPTZ,
		current BOOLEAN NOT NULL DEFAULT false,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS educations (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		seq BIGSERIAL,
		school TEXT NOT NULL,
		degree TEXT NOT NULL,
		field_of_study TEXT NOT NULL,
		from_date TIMESTAMPTZ NOT NULL,
		to_date TIMESTAMPTZ,
		current BOOLEAN NOT NULL DEFAULT false,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS post_likes (
		post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		seq BIGSERIAL,
		PRIMARY KEY (post_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS post_comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		seq BIGSERIAL,
		text TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	_, err := pool.Exec(ctx, schema)
	return err
}
