package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/petermanchester1987/actor-connect/internal/domain"
)

type mockPostRepo struct {
	posts    map[string]domain.Post
	likes    map[string][]domain.Like
	comments map[string][]domain.Comment
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{
		posts:    make(map[string]domain.Post),
		likes:    make(map[string][]domain.Like),
		comments: make(map[string][]domain.Comment),
	}
}

func (m *mockPostRepo) Create(_ context.Context, post domain.Post) error {
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (domain.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return domain.Post{}, pgx.ErrNoRows
	}
	post.Likes = m.likes[id]
	post.Comments = m.comments[id]
	return post, nil
}

func (m *mockPostRepo) List(_ context.Context) ([]domain.Post, error) {
	posts := make([]domain.Post, 0, len(m.posts))
	for id := range m.posts {
		post, _ := m.GetByID(context.Background(), id)
		posts = append(posts, post)
	}
	return posts, nil
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.posts, id)
	delete(m.likes, id)
	delete(m.comments, id)
	return nil
}

func (m *mockPostRepo) AddLike(_ context.Context, postID, userID string) (bool, error) {
	for _, like := range m.likes[postID] {
		if like.UserID == userID {
			return false, nil
		}
	}
	m.likes[postID] = append([]domain.Like{{UserID: userID}}, m.likes[postID]...)
	return true, nil
}

func (m *mockPostRepo) RemoveLike(_ context.Context, postID, userID string) error {
	kept := m.likes[postID][:0]
	for _, like := range m.likes[postID] {
		if like.UserID != userID {
			kept = append(kept, like)
		}
	}
	m.likes[postID] = kept
	return nil
}

func (m *mockPostRepo) Likes(_ context.Context, postID string) ([]domain.Like, error) {
	return append([]domain.Like{}, m.likes[postID]...), nil
}

func (m *mockPostRepo) AddComment(_ context.Context, postID string, comment domain.Comment) error {
	m.comments[postID] = append([]domain.Comment{comment}, m.comments[postID]...)
	return nil
}

func (m *mockPostRepo) GetComment(_ context.Context, postID, commentID string) (domain.Comment, error) {
	for _, c := range m.comments[postID] {
		if c.ID == commentID {
			return c, nil
		}
	}
	return domain.Comment{}, pgx.ErrNoRows
}

func (m *mockPostRepo) RemoveComment(_ context.Context, postID, commentID string) error {
	kept := m.comments[postID][:0]
	for _, c := range m.comments[postID] {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(m.comments[postID]) {
		return pgx.ErrNoRows
	}
	m.comments[postID] = kept
	return nil
}

func (m *mockPostRepo) Comments(_ context.Context, postID string) ([]domain.Comment, error) {
	return append([]domain.Comment{}, m.comments[postID]...), nil
}

func newPostFixture(t *testing.T) (*PostService, *mockUserRepo, *mockPostRepo, domain.User) {
	t.Helper()
	users := newMockUserRepo()
	posts := newMockPostRepo()
	author := domain.User{
		ID:        "u1",
		Name:      "Peter",
		Email:     "peter@example.com",
		Avatar:    "https://www.gravatar.com/avatar/abc",
		CreatedAt: time.Now().UTC(),
	}
	if err := users.Create(context.Background(), author); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewPostService(zap.NewNop(), posts, users), users, posts, author
}

func TestPostService_CreateSnapshotsAuthor(t *testing.T) {
	svc, _, _, author := newPostFixture(t)

	post, err := svc.Create(context.Background(), author.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Name != "Peter" || post.Avatar != author.Avatar {
		t.Fatalf("expected author snapshot, got %+v", post)
	}
	if post.UserID != author.ID {
		t.Fatalf("unexpected owner %q", post.UserID)
	}
}

func TestPostService_LikeTwiceConflicts(t *testing.T) {
	svc, _, _, author := newPostFixture(t)

	post, err := svc.Create(context.Background(), author.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	likes, err := svc.Like(context.Background(), author.ID, post.ID)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if len(likes) != 1 {
		t.Fatalf("expected 1 like, got %d", len(likes))
	}

	if _, err := svc.Like(context.Background(), author.ID, post.ID); err != ErrAlreadyLiked {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	stored, err := svc.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Likes) != 1 {
		t.Fatalf("like list must stay at 1, got %d", len(stored.Likes))
	}
}

func TestPostService_UnlikeIsNoOpWithoutLike(t *testing.T) {
	svc, _, _, author := newPostFixture(t)

	post, err := svc.Create(context.Background(), author.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	likes, err := svc.Unlike(context.Background(), author.ID, post.ID)
	if err != nil {
		t.Fatalf("unlike without like: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected unchanged empty list, got %d", len(likes))
	}

	if _, err := svc.Like(context.Background(), author.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	likes, err = svc.Unlike(context.Background(), author.ID, post.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected like removed, got %d", len(likes))
	}
}

func TestPostService_DeleteOwnerOnly(t *testing.T) {
	svc, users, _, author := newPostFixture(t)

	other := domain.User{ID: "u2", Name: "Other", Email: "other@example.com"}
	if err := users.Create(context.Background(), other); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	post, err := svc.Create(context.Background(), author.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), other.ID, post.ID); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), author.ID, post.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), post.ID); err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestPostService_CommentOwnership(t *testing.T) {
	svc, users, _, author := newPostFixture(t)

	other := domain.User{ID: "u2", Name: "Other", Email: "other@example.com"}
	if err := users.Create(context.Background(), other); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	post, err := svc.Create(context.Background(), author.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	comments, err := svc.AddComment(context.Background(), other.ID, post.ID, "nice")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if len(comments) != 1 || comments[0].Name != "Other" {
		t.Fatalf("unexpected comments %+v", comments)
	}

	if _, err := svc.RemoveComment(context.Background(), author.ID, post.ID, comments[0].ID); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for non-author, got %v", err)
	}

	remaining, err := svc.RemoveComment(context.Background(), other.ID, post.ID, comments[0].ID)
	if err != nil {
		t.Fatalf("remove comment: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty list, got %d", len(remaining))
	}

	if _, err := svc.RemoveComment(context.Background(), other.ID, post.ID, "missing"); err != ErrCommentNotFound {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestPostService_CommentsPrepend(t *testing.T) {
	svc, _, _, author := newPostFixture(t)

	post, err := svc.Create(context.Background(), author.ID, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddComment(context.Background(), author.ID, post.ID, "first"); err != nil {
		t.Fatalf("add first: %v", err)
	}
	comments, err := svc.AddComment(context.Background(), author.ID, post.ID, "second")
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if comments[0].Text != "second" || comments[1].Text != "first" {
		t.Fatalf("expected newest first, got %+v", comments)
	}
}
