package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petermanchester1987/actor-connect/internal/domain"
)

// ProfileRepository define el contrato de persistencia para perfiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	AddExperience(ctx context.Context, profileID string, exp domain.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID string) error
	AddEducation(ctx context.Context, profileID string, edu domain.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID string) error
}

// PgProfileRepository implementa ProfileRepository usando pgxpool.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// Upsert crea o reemplaza el perfil del usuario en una sola sentencia
// atómica; nunca puede dejar dos perfiles para el mismo usuario.
func (r *PgProfileRepository) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	const query = `
		INSERT INTO profiles (
			id, user_id, company, location, website, bio, status,
			spotlight_pin, skills, youtube, twitter, instagram,
			linkedin, facebook, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			spotlight_pin = EXCLUDED.spotlight_pin,
			skills = EXCLUDED.skills,
			youtube = EXCLUDED.youtube,
			twitter = EXCLUDED.twitter,
			instagram = EXCLUDED.instagram,
			linkedin = EXCLUDED.linkedin,
			facebook = EXCLUDED.facebook,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Company,
		profile.Location,
		profile.Website,
		profile.Bio,
		profile.Status,
		profile.SpotlightPin,
		profile.Skills,
		profile.Social.Youtube,
		profile.Social.Twitter,
		profile.Social.Instagram,
		profile.Social.Linkedin,
		profile.Social.Facebook,
		profile.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	return r.GetByUserID(ctx, profile.UserID)
}

func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	const query = `
		SELECT p.id, p.user_id, p.company, p.location, p.website, p.bio,
			p.status, p.spotlight_pin, p.skills, p.youtube, p.twitter,
			p.instagram, p.linkedin, p.facebook, p.updated_at,
			u.name, u.avatar
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	profile, err := r.scanOne(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return domain.Profile{}, err
	}
	if err := r.loadEntries(ctx, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (r *PgProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	const query = `
		SELECT p.id, p.user_id, p.company, p.location, p.website, p.bio,
			p.status, p.spotlight_pin, p.skills, p.youtube, p.twitter,
			p.instagram, p.linkedin, p.facebook, p.updated_at,
			u.name, u.avatar
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		profile, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range profiles {
		if err := r.loadEntries(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

func (r *PgProfileRepository) AddExperience(ctx context.Context, profileID string, exp domain.Experience) error {
	const query = `
		INSERT INTO experiences (
			id, profile_id, title, role, company, director, location,
			from_date, to_date, current, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		exp.ID,
		profileID,
		exp.Title,
		exp.Role,
		exp.Company,
		exp.Director,
		exp.Location,
		exp.From,
		exp.To,
		exp.Current,
		exp.Description,
	)
	return err
}

func (r *PgProfileRepository) RemoveExperience(ctx context.Context, profileID, expID string) error {
	const query = `DELETE FROM experiences WHERE id = $1 AND profile_id = $2`
	tag, err := r.pool.Exec(ctx, query, expID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgProfileRepository) AddEducation(ctx context.Context, profileID string, edu domain.Education) error {
	const query = `
		INSERT INTO educations (
			id, profile_id, school, degree, field_of_study,
			from_date, to_date, current, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		edu.ID,
		profileID,
		edu.School,
		edu.Degree,
		edu.FieldOfStudy,
		edu.From,
		edu.To,
		edu.Current,
		edu.Description,
	)
	return err
}

func (r *PgProfileRepository) RemoveEducation(ctx context.Context, profileID, eduID string) error {
	const query = `DELETE FROM educations WHERE id = $1 AND profile_id = $2`
	tag, err := r.pool.Exec(ctx, query, eduID, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgProfileRepository) scanOne(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Company,
		&p.Location,
		&p.Website,
		&p.Bio,
		&p.Status,
		&p.SpotlightPin,
		&p.Skills,
		&p.Social.Youtube,
		&p.Social.Twitter,
		&p.Social.Instagram,
		&p.Social.Linkedin,
		&p.Social.Facebook,
		&p.UpdatedAt,
		&p.User.Name,
		&p.User.Avatar,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	p.User.ID = p.UserID
	return p, err
}

// loadEntries carga experiencia y educación en orden más-reciente-primero.
func (r *PgProfileRepository) loadEntries(ctx context.Context, profile *domain.Profile) error {
	const expQuery = `
		SELECT id, title, role, company, director, location,
			from_date, to_date, current, description
		FROM experiences
		WHERE profile_id = $1
		ORDER BY seq DESC
	`
	rows, err := r.pool.Query(ctx, expQuery, profile.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	profile.Experience = make([]domain.Experience, 0)
	for rows.Next() {
		var exp domain.Experience
		if err := rows.Scan(
			&exp.ID,
			&exp.Title,
			&exp.Role,
			&exp.Company,
			&exp.Director,
			&exp.Location,
			&exp.From,
			&exp.To,
			&exp.Current,
			&exp.Description,
		); err != nil {
			return err
		}
		profile.Experience = append(profile.Experience, exp)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const eduQuery = `
		SELECT id, school, degree, field_of_study,
			from_date, to_date, current, description
		FROM educations
		WHERE profile_id = $1
		ORDER BY seq DESC
	`
	eduRows, err := r.pool.Query(ctx, eduQuery, profile.ID)
	if err != nil {
		return err
	}
	defer eduRows.Close()

	profile.Education = make([]domain.Education, 0)
	for eduRows.Next() {
		var edu domain.Education
		if err := eduRows.Scan(
			&edu.ID,
			&edu.School,
			&edu.Degree,
			&edu.FieldOfStudy,
			&edu.From,
			&edu.To,
			&edu.Current,
			&edu.Description,
		); err != nil {
			return err
		}
		profile.Education = append(profile.Education, edu)
	}
	return eduRows.Err()
}
