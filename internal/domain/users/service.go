package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-tracker/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

const maxDisplayName = 80

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Me devuelve el perfil del usuario, creándolo desde los claims si no existe.
func (s *Service) Me(ctx context.Context, claims auth.Claims) (Profile, error) {
	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	now := s.now()
	p = Profile{
		UserID:      userID,
		DisplayName: defaultName(claims),
		Email:       strings.TrimSpace(claims.Email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

type UpdateInput struct {
	DisplayName *string
	PhotoURL    *string
}

func (s *Service) Update(ctx context.Context, claims auth.Claims, in UpdateInput) (Profile, error) {
	p, err := s.Me(ctx, claims)
	if err != nil {
		return Profile{}, err
	}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return Profile{}, fmt.Errorf("%w: display_name is required", ErrInvalidInput)
		}
		if len([]rune(name)) > maxDisplayName {
			return Profile{}, fmt.Errorf("%w: display_name too long", ErrInvalidInput)
		}
		p.DisplayName = name
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func defaultName(c auth.Claims) string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	if email := strings.TrimSpace(c.Email); email != "" {
		if i := strings.Index(email, "@"); i > 0 {
			return email[:i]
		}
		return email
	}
	return c.UserID
}
