package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-tracker/internal/domain/community"
)

type communityRepo struct {
	mu       sync.RWMutex
	posts    map[string]community.Post
	comments map[string][]community.Comment // por postID, en orden de llegada
}

func NewCommunityRepo() community.Repository {
	return &communityRepo{
		posts:    make(map[string]community.Post),
		comments: make(map[string][]community.Comment),
	}
}

func (r *communityRepo) CreatePost(ctx context.Context, p community.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("post id required")
	}
	if _, exists := r.posts[p.ID]; exists {
		return errors.New("post already exists")
	}
	r.posts[p.ID] = p
	return nil
}

func (r *communityRepo) GetPost(ctx context.Context, id string) (community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return community.Post{}, community.ErrNotFound
	}
	return p, nil
}

func (r *communityRepo) ListPosts(ctx context.Context, limit int) ([]community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *communityRepo) DeletePost(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return community.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *communityRepo) CreateComment(ctx context.Context, c community.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("comment id required")
	}
	r.comments[c.PostID] = append(r.comments[c.PostID], c)
	return nil
}

func (r *communityRepo) ListComments(ctx context.Context, postID string) ([]community.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Comment, len(r.comments[postID]))
	copy(out, r.comments[postID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *communityRepo) DeleteCommentsByPost(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.comments, postID)
	return nil
}
