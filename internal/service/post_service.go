package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/petermanchester1987/actor-connect/internal/domain"
	"github.com/petermanchester1987/actor-connect/internal/repository"
)

// PostService coordina el feed de posts, likes y comentarios.
type PostService struct {
	logger *zap.Logger
	posts  repository.PostRepository
	users  repository.UserRepository
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{
		logger: logger,
		posts:  posts,
		users:  users,
	}
}

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotOwner        = errors.New("not the owner")
)

// Create guarda el post con una copia del nombre y avatar del autor.
func (s *PostService) Create(ctx context.Context, userID, text string) (domain.Post, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, ErrUserNotFound
		}
		return domain.Post{}, err
	}

	post := domain.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return post, nil
}

// Delete borra el post solo si el que llama es su autor.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Like agrega el like del usuario; un segundo like del mismo usuario
// es un conflicto y la lista no cambia.
func (s *PostService) Like(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	added, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyLiked
	}
	return s.posts.Likes(ctx, postID)
}

// Unlike quita el like del usuario si existe; si no existe devuelve la
// lista sin cambios.
func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.posts.Likes(ctx, postID)
}

func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) ([]domain.Comment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	return s.posts.Comments(ctx, postID)
}

// RemoveComment elimina el comentario solo si el que llama es su autor.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.posts.GetComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := s.posts.RemoveComment(ctx, postID, commentID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return s.posts.Comments(ctx, postID)
}
