package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petermanchester1987/actor-connect/internal/domain"
)

// PostRepository define el contrato de persistencia para posts,
// likes y comentarios.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	GetByID(ctx context.Context, id string) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	RemoveLike(ctx context.Context, postID, userID string) error
	Likes(ctx context.Context, postID string) ([]domain.Like, error)
	AddComment(ctx context.Context, postID string, comment domain.Comment) error
	GetComment(ctx context.Context, postID, commentID string) (domain.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID string) error
	Comments(ctx context.Context, postID string) ([]domain.Comment, error)
}

// PgPostRepository implementa PostRepository usando pgxpool.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

func (r *PgPostRepository) Create(ctx context.Context, post domain.Post) error {
	const query = `
		INSERT INTO posts (id, user_id, text, name, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.Text,
		post.Name,
		post.Avatar,
		post.CreatedAt,
	)
	return err
}

func (r *PgPostRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	const query = `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		WHERE id = $1
	`
	var p domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.UserID,
		&p.Text,
		&p.Name,
		&p.Avatar,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}
	if err := r.loadLists(ctx, &p); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *PgPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	const query = `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Text,
			&p.Name,
			&p.Avatar,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range posts {
		if err := r.loadLists(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddLike inserta el like solo si no existe; devuelve false cuando el
// usuario ya había dado like. Una sola sentencia, sin read-modify-write.
func (r *PgPostRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	const query = `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, postID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveLike quita el like del usuario si existe; quitar un like ausente
// no es un error.
func (r *PgPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	const query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	return err
}

func (r *PgPostRepository) Likes(ctx context.Context, postID string) ([]domain.Like, error) {
	const query = `
		SELECT user_id
		FROM post_likes
		WHERE post_id = $1
		ORDER BY seq DESC
	`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make([]domain.Like, 0)
	for rows.Next() {
		var like domain.Like
		if err := rows.Scan(&like.UserID); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

func (r *PgPostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) error {
	const query = `
		INSERT INTO post_comments (id, post_id, user_id, text, name, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		postID,
		comment.UserID,
		comment.Text,
		comment.Name,
		comment.Avatar,
		comment.CreatedAt,
	)
	return err
}

func (r *PgPostRepository) GetComment(ctx context.Context, postID, commentID string) (domain.Comment, error) {
	const query = `
		SELECT id, user_id, text, name, avatar, created_at
		FROM post_comments
		WHERE id = $1 AND post_id = $2
	`
	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, commentID, postID).Scan(
		&c.ID,
		&c.UserID,
		&c.Text,
		&c.Name,
		&c.Avatar,
		&c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Comment{}, err
	}
	return c, err
}

func (r *PgPostRepository) RemoveComment(ctx context.Context, postID, commentID string) error {
	const query = `DELETE FROM post_comments WHERE id = $1 AND post_id = $2`
	tag, err := r.pool.Exec(ctx, query, commentID, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgPostRepository) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	const query = `
		SELECT id, user_id, text, name, avatar, created_at
		FROM post_comments
		WHERE post_id = $1
		ORDER BY seq DESC
	`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Text,
			&c.Name,
			&c.Avatar,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PgPostRepository) loadLists(ctx context.Context, post *domain.Post) error {
	likes, err := r.Likes(ctx, post.ID)
	if err != nil {
		return err
	}
	post.Likes = likes

	comments, err := r.Comments(ctx, post.ID)
	if err != nil {
		return err
	}
	post.Comments = comments
	return nil
}
