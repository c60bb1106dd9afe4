package community

import "context"

type Repository interface {
	CreatePost(ctx context.Context, p Post) error
	GetPost(ctx context.Context, id string) (Post, error)
	// ListPosts devuelve los posts más nuevos primero.
	ListPosts(ctx context.Context, limit int) ([]Post, error)
	DeletePost(ctx context.Context, id string) error

	CreateComment(ctx context.Context, c Comment) error
	// ListComments devuelve los comentarios del post, más viejos primero.
	ListComments(ctx context.Context, postID string) ([]Comment, error)
	DeleteCommentsByPost(ctx context.Context, postID string) error
}
