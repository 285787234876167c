package service

import (
	"context"
	"strings"
	"time"

	"shopkart/internal/identity"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// blogService implements BlogService.
type blogService struct {
	blogRepo repository.BlogRepository
	logger   zerolog.Logger
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo repository.BlogRepository, logger zerolog.Logger) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		logger:   logger.With().Str("service", "blog").Logger(),
	}
}

// CreatePost publishes a post authored by the caller.
func (s *blogService) CreatePost(ctx context.Context, id identity.Identity, title, content, category, tags string) (*model.BlogPost, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.ErrEmptyTitle
	}

	post := &model.BlogPost{
		ID:        uuid.New(),
		Title:     title,
		Slug:      model.Slugify(title),
		Content:   content,
		AuthorID:  id.UserID,
		Category:  strings.TrimSpace(category),
		Tags:      strings.TrimSpace(tags),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	post.UpdatedAt = post.CreatedAt

	if err := s.blogRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("slug", post.Slug).
		Str("author_id", id.UserID.String()).
		Msg("blog post created")

	return post, nil
}

// ListPosts lists active posts with pagination.
func (s *blogService) ListPosts(ctx context.Context, category string, limit, offset int) ([]model.BlogPost, error) {
	if limit <= 0 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.blogRepo.ListPosts(ctx, strings.TrimSpace(category), limit, offset)
}

// GetPost retrieves a post by slug. Each successful read counts as a
// view; the counter bump and the read are one statement.
func (s *blogService) GetPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	post, err := s.blogRepo.ViewPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}

	return post, nil
}

// Like increments a post's like counter.
func (s *blogService) Like(ctx context.Context, id identity.Identity, slug string) (int, error) {
	if !id.HasUser() {
		return 0, model.ErrAuthRequired
	}

	post, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, model.ErrPostNotFound
	}

	likes, found, err := s.blogRepo.Like(ctx, post.ID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, model.ErrPostNotFound
	}

	return likes, nil
}

// Unlike decrements a post's like counter, floored at zero.
func (s *blogService) Unlike(ctx context.Context, id identity.Identity, slug string) (int, error) {
	if !id.HasUser() {
		return 0, model.ErrAuthRequired
	}

	post, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, model.ErrPostNotFound
	}

	likes, found, err := s.blogRepo.Unlike(ctx, post.ID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, model.ErrPostNotFound
	}

	return likes, nil
}

// ListComments lists a post's comments, newest first.
func (s *blogService) ListComments(ctx context.Context, slug string) ([]model.BlogComment, error) {
	post, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}

	return s.blogRepo.ListComments(ctx, post.ID)
}

// CreateComment adds the caller's comment to a post. The comment insert
// and the post's comment_count increment commit together.
func (s *blogService) CreateComment(ctx context.Context, id identity.Identity, slug, text string) (*model.BlogComment, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyComment
	}

	post, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}

	comment := &model.BlogComment{
		ID:        uuid.New(),
		PostID:    post.ID,
		UserID:    id.UserID,
		Comment:   text,
		CreatedAt: time.Now(),
	}

	if err := s.blogRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("slug", slug).
		Str("user_id", id.UserID.String()).
		Msg("blog comment created")

	return comment, nil
}

// DeleteComment removes one of the caller's comments.
func (s *blogService) DeleteComment(ctx context.Context, id identity.Identity, commentID uuid.UUID) error {
	if !id.HasUser() {
		return model.ErrAuthRequired
	}

	deleted, err := s.blogRepo.DeleteComment(ctx, commentID, id.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrCommentNotFound
	}

	return nil
}
