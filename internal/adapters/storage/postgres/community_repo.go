package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-tracker/internal/domain/community"
)

type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

func (r *CommunityRepo) CreatePost(ctx context.Context, p community.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, title, body, image_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, p.ID, p.AuthorID, p.Title, p.Body, p.ImageURL, p.CreatedAt)
	return err
}

func (r *CommunityRepo) GetPost(ctx context.Context, id string) (community.Post, error) {
	var p community.Post
	err := r.db.QueryRowContext(ctx, `
		SELECT id, author_id, title, body, image_url, created_at
		FROM posts
		WHERE id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return community.Post{}, community.ErrNotFound
	}
	return p, err
}

func (r *CommunityRepo) ListPosts(ctx context.Context, limit int) ([]community.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author_id, title, body, image_url, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Post, 0)
	for rows.Next() {
		var p community.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) DeletePost(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return community.ErrNotFound
	}
	return nil
}

func (r *CommunityRepo) CreateComment(ctx context.Context, c community.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, body, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, c.ID, c.PostID, c.AuthorID, c.Body, c.CreatedAt)
	return err
}

func (r *CommunityRepo) ListComments(ctx context.Context, postID string) ([]community.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, author_id, body, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Comment, 0)
	for rows.Next() {
		var c community.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) DeleteCommentsByPost(ctx context.Context, postID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	return err
}
