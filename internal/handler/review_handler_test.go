package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shopkart/internal/identity"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewHandler_List(t *testing.T) {
	svc := new(MockReviewService)
	svc.On("ListByProduct", mock.Anything, "p1").Return([]model.Review{
		{ID: uuid.New(), ProductID: "p1", Rating: 5, Comment: "great"},
	}, nil)

	h := NewReviewHandler(svc, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/products/p1/reviews", nil)
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestReviewHandler_Create(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}

	t.Run("success", func(t *testing.T) {
		svc := new(MockReviewService)
		svc.On("Create", mock.Anything, id, "p1", 4, "solid").
			Return(&model.Review{ProductID: "p1", UserID: id.UserID, Rating: 4, Comment: "solid"}, nil)

		h := NewReviewHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/products/p1/reviews", map[string]any{
			"rating":  4,
			"comment": "solid",
		}), id)
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("out-of-range rating rejected", func(t *testing.T) {
		svc := new(MockReviewService)
		h := NewReviewHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/products/p1/reviews", map[string]any{
			"rating": 9,
		}), id)
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate review maps to 400", func(t *testing.T) {
		svc := new(MockReviewService)
		svc.On("Create", mock.Anything, id, "p1", 4, "").Return(nil, model.ErrReviewExists)

		h := NewReviewHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/products/p1/reviews", map[string]any{
			"rating": 4,
		}), id)
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReviewHandler_Delete(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}

	t.Run("success", func(t *testing.T) {
		svc := new(MockReviewService)
		svc.On("Delete", mock.Anything, id, "p1").Return(nil)

		h := NewReviewHandler(svc, zerolog.Nop())
		req := requestWithIdentity(httptest.NewRequest(http.MethodDelete, "/products/p1/reviews", nil), id)
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing review maps to 404", func(t *testing.T) {
		svc := new(MockReviewService)
		svc.On("Delete", mock.Anything, id, "p1").Return(model.ErrReviewNotFound)

		h := NewReviewHandler(svc, zerolog.Nop())
		req := requestWithIdentity(httptest.NewRequest(http.MethodDelete, "/products/p1/reviews", nil), id)
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()

		h.Handle(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReviewHandler_UnsupportedMethod(t *testing.T) {
	h := NewReviewHandler(new(MockReviewService), zerolog.Nop())
	req := httptest.NewRequest(http.MethodPut, "/products/p1/reviews", nil)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
