package handler

import (
	"net/http"
	"strconv"

	"shopkart/internal/identity"
	"shopkart/internal/service"
	"shopkart/internal/validate"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BlogHandler handles blog post and comment HTTP requests.
type BlogHandler struct {
	service service.BlogService
	logger  zerolog.Logger
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(service service.BlogService, logger zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  logger.With().Str("handler", "blog").Logger(),
	}
}

type createPostRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

type createCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// likeResult is the payload for like/unlike responses.
type likeResult struct {
	Slug  string `json:"slug"`
	Likes int    `json:"number_of_likes"`
}

// Posts dispatches /blog/posts by method.
func (h *BlogHandler) Posts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	category := r.URL.Query().Get("category")

	posts, err := h.service.ListPosts(r.Context(), category, limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, posts, "Posts retrieved successfully")
}

func (h *BlogHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	post, err := h.service.CreatePost(r.Context(), identity.FromContext(r.Context()),
		req.Title, req.Content, req.Category, req.Tags)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, post, "Post created successfully")
}

// GetPost handles GET /blog/posts/{slug} requests.
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	post, err := h.service.GetPost(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, post, "Post retrieved successfully")
}

// Like handles POST /blog/posts/{slug}/like requests.
func (h *BlogHandler) Like(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	slug := r.PathValue("slug")
	likes, err := h.service.Like(r.Context(), identity.FromContext(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, likeResult{Slug: slug, Likes: likes}, "Post liked")
}

// Unlike handles POST /blog/posts/{slug}/unlike requests.
func (h *BlogHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	slug := r.PathValue("slug")
	likes, err := h.service.Unlike(r.Context(), identity.FromContext(r.Context()), slug)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, likeResult{Slug: slug, Likes: likes}, "Post unliked")
}

// Comments dispatches /blog/posts/{slug}/comments by method.
func (h *BlogHandler) Comments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listComments(w, r)
	case http.MethodPost:
		h.createComment(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *BlogHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, comments, "Comments retrieved successfully")
}

func (h *BlogHandler) createComment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), identity.FromContext(r.Context()),
		r.PathValue("slug"), req.Comment)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, comment, "Comment created successfully")
}

// DeleteComment handles DELETE /blog/comments/{id} requests.
func (h *BlogHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	commentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment ID", h.logger)
		return
	}

	err = h.service.DeleteComment(r.Context(), identity.FromContext(r.Context()), commentID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Comment deleted successfully")
}
