package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/ports/realtime"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("post not found")
	ErrForbidden    = errors.New("forbidden")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Service struct {
	repo Repository
	hub  realtime.Hub
	now  func() time.Time
}

func NewService(repo Repository, hub realtime.Hub) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
		now:  time.Now,
	}
}

type CreatePostInput struct {
	Title    string
	Body     string
	ImageURL string
}

func (s *Service) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (Post, error) {
	if strings.TrimSpace(authorID) == "" {
		return Post{}, ErrInvalidInput
	}
	if err := ValidatePost(in); err != nil {
		return Post{}, err
	}

	p := Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     strings.TrimSpace(in.Title),
		Body:      strings.TrimSpace(in.Body),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: s.now(),
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// ValidatePost permite validar antes de subir la imagen.
func ValidatePost(in CreatePostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	return nil
}

func (s *Service) GetPost(ctx context.Context, id string) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, ErrNotFound
	}
	return s.repo.GetPost(ctx, id)
}

func (s *Service) ListPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return s.repo.ListPosts(ctx, limit)
}

// DeletePost solo lo puede hacer el autor. Borra primero los comentarios.
func (s *Service) DeletePost(ctx context.Context, authorID, id string, choice confirm.Choice) error {
	if err := confirm.Require(choice); err != nil {
		return err
	}

	p, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != authorID {
		return ErrForbidden
	}

	if err := s.repo.DeleteCommentsByPost(ctx, p.ID); err != nil {
		return fmt.Errorf("delete comments of post %s: %w", p.ID, err)
	}
	if err := s.repo.DeletePost(ctx, p.ID); err != nil {
		return err
	}
	s.publish(ctx, p.ID, realtime.OpDeleted, p.ID)
	return nil
}

func (s *Service) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, postID)
}

func (s *Service) AddComment(ctx context.Context, authorID, postID, body string) (Comment, error) {
	body = strings.TrimSpace(body)
	if strings.TrimSpace(authorID) == "" || body == "" {
		return Comment{}, fmt.Errorf("%w: comment body is required", ErrInvalidInput)
	}
	if _, err := s.GetPost(ctx, postID); err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return Comment{}, err
	}
	s.publish(ctx, postID, realtime.OpCreated, c.ID)
	return c, nil
}

func (s *Service) publish(ctx context.Context, postID string, op realtime.Op, id string) {
	if s.hub == nil {
		return
	}
	_ = s.hub.Publish(ctx, realtime.Event{
		Topic: realtime.CommentsTopic(postID),
		Op:    op,
		ID:    id,
	})
}
