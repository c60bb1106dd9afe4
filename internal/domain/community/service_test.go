package community

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/ports/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	posts    map[string]Post
	comments []Comment

	failDeleteComments error
}

func newTestRepo() *testRepo {
	return &testRepo{posts: map[string]Post{}}
}

func (r *testRepo) CreatePost(ctx context.Context, p Post) error {
	r.posts[p.ID] = p
	return nil
}

func (r *testRepo) GetPost(ctx context.Context, id string) (Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListPosts(ctx context.Context, limit int) ([]Post, error) {
	out := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *testRepo) DeletePost(ctx context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *testRepo) CreateComment(ctx context.Context, c Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *testRepo) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	out := make([]Comment, 0)
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteCommentsByPost(ctx context.Context, postID string) error {
	if r.failDeleteComments != nil {
		return r.failDeleteComments
	}
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

type recordingHub struct {
	events []realtime.Event
}

func (h *recordingHub) Publish(ctx context.Context, ev realtime.Event) error {
	h.events = append(h.events, ev)
	return nil
}

func (h *recordingHub) Subscribe(ctx context.Context, topic realtime.Topic, fn func(realtime.Event)) (func(), error) {
	return func() {}, nil
}

func newTestService() (*Service, *testRepo, *recordingHub) {
	repo := newTestRepo()
	hub := &recordingHub{}
	svc := NewService(repo, hub)
	base := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc, repo, hub
}

func TestCreatePost_Validation(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.CreatePost(context.Background(), "u1", CreatePostInput{Body: "hola"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CreatePost(context.Background(), "u1", CreatePostInput{Title: "hola"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.posts)
}

func TestListPosts_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, "u1", CreatePostInput{Title: "a", Body: "a"})
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, "u2", CreatePostInput{Title: "b", Body: "b"})
	require.NoError(t, err)

	got, err := svc.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestAddComment_PublishesToPostTopic(t *testing.T) {
	svc, _, hub := newTestService()
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, "u1", CreatePostInput{Title: "a", Body: "a"})
	require.NoError(t, err)

	c, err := svc.AddComment(ctx, "u2", p.ID, " lindo ")
	require.NoError(t, err)
	assert.Equal(t, "lindo", c.Body)

	require.Len(t, hub.events, 1)
	assert.Equal(t, realtime.CommentsTopic(p.ID), hub.events[0].Topic)
	assert.Equal(t, realtime.OpCreated, hub.events[0].Op)

	_, err = svc.AddComment(ctx, "u2", "nope", "hola")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.AddComment(ctx, "u2", p.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeletePost(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, "u1", CreatePostInput{Title: "a", Body: "a"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, "u2", p.ID, "hola")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, "u1", p.ID, confirm.Cancel), confirm.ErrRequired)
	assert.ErrorIs(t, svc.DeletePost(ctx, "u2", p.ID, confirm.Delete), ErrForbidden)
	assert.Contains(t, repo.posts, p.ID)
	assert.Len(t, repo.comments, 1)

	require.NoError(t, svc.DeletePost(ctx, "u1", p.ID, confirm.Delete))
	assert.NotContains(t, repo.posts, p.ID)
	assert.Empty(t, repo.comments)
}

func TestDeletePost_KeepsPostWhenCommentsFail(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, "u1", CreatePostInput{Title: "a", Body: "a"})
	require.NoError(t, err)
	repo.failDeleteComments = errors.New("db down")

	assert.Error(t, svc.DeletePost(ctx, "u1", p.ID, confirm.Delete))
	assert.Contains(t, repo.posts, p.ID)
}
