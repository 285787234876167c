package repository

import (
	"context"
	"fmt"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const blogPostColumns = `id, title, slug, content, author_id, category, tags,
	is_active, view_count, like_count, comment_count, created_at, updated_at`

// blogRepository implements the BlogRepository interface using PostgreSQL.
type blogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBlogRepository creates a new PostgreSQL-backed blog repository.
func NewBlogRepository(pool *pgxpool.Pool, logger zerolog.Logger) BlogRepository {
	return &blogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "blog").Logger(),
	}
}

// CreatePost inserts a blog post.
func (r *blogRepository) CreatePost(ctx context.Context, post *model.BlogPost) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blog_posts (id, title, slug, content, author_id, category, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, post.ID, post.Title, post.Slug, post.Content, post.AuthorID, post.Category, post.Tags, post.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrSlugTaken
		}
		r.logger.Error().Err(err).Str("slug", post.Slug).Msg("failed to insert blog post")
		return fmt.Errorf("failed to insert blog post: %w", err)
	}

	return nil
}

// ListPosts retrieves active posts, newest first.
func (r *blogRepository) ListPosts(ctx context.Context, category string, limit, offset int) ([]model.BlogPost, error) {
	query := `
		SELECT ` + blogPostColumns + `
		FROM blog_posts
		WHERE is_active = TRUE AND ($1 = '' OR category ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query blog posts")
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// GetBySlug retrieves an active post without touching its counters.
func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	query := `
		SELECT ` + blogPostColumns + `
		FROM blog_posts
		WHERE slug = $1 AND is_active = TRUE
	`

	post, err := r.scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query blog post")
		return nil, fmt.Errorf("failed to query blog post: %w", err)
	}
	return post, nil
}

// ViewPost bumps view_count and returns the post in one statement, so
// concurrent reads never lose a view.
func (r *blogRepository) ViewPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	query := `
		UPDATE blog_posts
		SET view_count = view_count + 1
		WHERE slug = $1 AND is_active = TRUE
		RETURNING ` + blogPostColumns

	post, err := r.scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to record blog post view")
		return nil, fmt.Errorf("failed to record blog post view: %w", err)
	}
	return post, nil
}

// Like increments like_count in the database, not in application memory.
func (r *blogRepository) Like(ctx context.Context, postID uuid.UUID) (int, bool, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `
		UPDATE blog_posts SET like_count = like_count + 1
		WHERE id = $1 AND is_active = TRUE
		RETURNING like_count
	`, postID).Scan(&likes)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to like blog post")
		return 0, false, fmt.Errorf("failed to like blog post: %w", err)
	}
	return likes, true, nil
}

// Unlike decrements like_count, floored at zero.
func (r *blogRepository) Unlike(ctx context.Context, postID uuid.UUID) (int, bool, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `
		UPDATE blog_posts SET like_count = GREATEST(like_count - 1, 0)
		WHERE id = $1 AND is_active = TRUE
		RETURNING like_count
	`, postID).Scan(&likes)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to unlike blog post")
		return 0, false, fmt.Errorf("failed to unlike blog post: %w", err)
	}
	return likes, true, nil
}

// CreateComment inserts a comment and increments the post's
// comment_count in the same transaction.
func (r *blogRepository) CreateComment(ctx context.Context, comment *model.BlogComment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO blog_comments (id, post_id, user_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, comment.ID, comment.PostID, comment.UserID, comment.Comment, comment.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("post_id", comment.PostID.String()).
			Str("user_id", comment.UserID.String()).
			Msg("failed to insert blog comment")
		return fmt.Errorf("failed to insert blog comment: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE blog_posts SET comment_count = comment_count + 1 WHERE id = $1
	`, comment.PostID)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", comment.PostID.String()).Msg("failed to increment comment count")
		return fmt.Errorf("failed to increment comment count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit blog comment transaction")
		return fmt.Errorf("failed to commit blog comment transaction: %w", err)
	}

	return nil
}

// DeleteComment removes the user's comment and decrements the post's
// comment_count in the same transaction.
func (r *blogRepository) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var postID uuid.UUID
	err = tx.QueryRow(ctx, `
		DELETE FROM blog_comments WHERE id = $1 AND user_id = $2
		RETURNING post_id
	`, commentID, userID).Scan(&postID)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.Error().Err(err).
			Str("comment_id", commentID.String()).
			Str("user_id", userID.String()).
			Msg("failed to delete blog comment")
		return false, fmt.Errorf("failed to delete blog comment: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE blog_posts SET comment_count = GREATEST(comment_count - 1, 0) WHERE id = $1
	`, postID)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to decrement comment count")
		return false, fmt.Errorf("failed to decrement comment count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit blog comment transaction")
		return false, fmt.Errorf("failed to commit blog comment transaction: %w", err)
	}

	return true, nil
}

// ListComments retrieves a post's comments, newest first.
func (r *blogRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]model.BlogComment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, user_id, comment, created_at
		FROM blog_comments
		WHERE post_id = $1
		ORDER BY created_at DESC
	`, postID)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to query blog comments")
		return nil, fmt.Errorf("failed to query blog comments: %w", err)
	}
	defer rows.Close()

	comments := []model.BlogComment{}
	for rows.Next() {
		var c model.BlogComment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Comment, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan blog comment row")
			return nil, fmt.Errorf("failed to scan blog comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating blog comment rows")
		return nil, fmt.Errorf("error iterating blog comments: %w", err)
	}

	return comments, nil
}

func (r *blogRepository) scanPost(row pgx.Row) (*model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.AuthorID, &p.Category, &p.Tags,
		&p.IsActive, &p.ViewCount, &p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]model.BlogPost, error) {
	posts := []model.BlogPost{}
	for rows.Next() {
		var p model.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.AuthorID, &p.Category, &p.Tags,
			&p.IsActive, &p.ViewCount, &p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog posts: %w", err)
	}
	return posts, nil
}
