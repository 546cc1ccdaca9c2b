package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

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

func (m *mockPostRepo) deleteByUser(userID string) {
	for id, post := range m.posts {
		if post.UserID == userID {
			delete(m.posts, id)
			delete(m.likes, id)
			delete(m.comments, id)
		}
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

func (s *testServer) createPost(t *testing.T, token, text string) domain.Post {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/posts", token, gin.H{"text": text})
	if rec.Code != http.StatusOK {
		t.Fatalf("create post: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var post domain.Post
	decodeBody(t, rec, &post)
	return post
}

func TestPosts_RequireAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/posts", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	var resp struct {
		Msg string `json:"msg"`
	}
	decodeBody(t, rec, &resp)
	if resp.Msg != "No token, authorisation denied" {
		t.Fatalf("unexpected msg %q", resp.Msg)
	}
}

func TestPosts_CreateAndGet(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Peter", "peter@example.com")

	post := s.createPost(t, token, "hello world")
	if post.Name != "Peter" {
		t.Fatalf("expected author snapshot, got %+v", post)
	}

	rec := s.do(t, http.MethodGet, "/api/posts/"+post.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get post: %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/posts", token, gin.H{"text": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", rec.Code)
	}
}

func TestPosts_LikeConflictAndUnlike(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Peter", "peter@example.com")
	post := s.createPost(t, token, "hello")

	rec := s.do(t, http.MethodPut, "/api/posts/like/"+post.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("like: %d", rec.Code)
	}
	var likes []domain.Like
	decodeBody(t, rec, &likes)
	if len(likes) != 1 {
		t.Fatalf("expected 1 like, got %d", len(likes))
	}

	rec = s.do(t, http.MethodPut, "/api/posts/like/"+post.ID, token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for double like, got %d", rec.Code)
	}
	var resp struct {
		Msg string `json:"msg"`
	}
	decodeBody(t, rec, &resp)
	if resp.Msg != "Post already liked" {
		t.Fatalf("unexpected msg %q", resp.Msg)
	}

	rec = s.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike: %d", rec.Code)
	}
	decodeBody(t, rec, &likes)
	if len(likes) != 0 {
		t.Fatalf("expected empty like list, got %d", len(likes))
	}

	// Quitar un like inexistente no es un error.
	rec = s.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unlike without like: %d", rec.Code)
	}
}

func TestPosts_DeleteOwnerOnly(t *testing.T) {
	s := newTestServer(t)
	ownerToken := s.register(t, "Peter", "peter@example.com")
	otherToken := s.register(t, "Other", "other@example.com")
	post := s.createPost(t, ownerToken, "hello")

	rec := s.do(t, http.MethodDelete, "/api/posts/"+post.ID, otherToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-owner, got %d", rec.Code)
	}
	var resp struct {
		Msg string `json:"msg"`
	}
	decodeBody(t, rec, &resp)
	if resp.Msg != "User not authorized" {
		t.Fatalf("unexpected msg %q", resp.Msg)
	}

	rec = s.do(t, http.MethodDelete, "/api/posts/"+post.ID, ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/posts/"+post.ID, ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestPosts_CommentFlow(t *testing.T) {
	s := newTestServer(t)
	ownerToken := s.register(t, "Peter", "peter@example.com")
	otherToken := s.register(t, "Other", "other@example.com")
	post := s.createPost(t, ownerToken, "hello")

	rec := s.do(t, http.MethodPost, "/api/posts/comment/"+post.ID, otherToken, gin.H{"text": "nice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add comment: %d", rec.Code)
	}
	var comments []domain.Comment
	decodeBody(t, rec, &comments)
	if len(comments) != 1 || comments[0].Name != "Other" {
		t.Fatalf("unexpected comments %+v", comments)
	}

	// Solo el autor del comentario puede borrarlo.
	rec = s.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, ownerToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for post owner, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, otherToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove comment: %d", rec.Code)
	}
	decodeBody(t, rec, &comments)
	if len(comments) != 0 {
		t.Fatalf("expected empty comment list, got %+v", comments)
	}

	rec = s.do(t, http.MethodDelete, "/api/posts/comment/"+post.ID+"/missing", otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown comment, got %d", rec.Code)
	}
}

func TestPosts_InvalidID(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Peter", "peter@example.com")

	rec := s.do(t, http.MethodGet, "/api/posts/not-a-uuid", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
