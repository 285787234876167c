package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopkart/internal/identity"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func requestWithIdentity(r *http.Request, id identity.Identity) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), id))
}

func testItemView(productID string, quantity int) *model.CartItemView {
	return &model.CartItemView{
		Product:  model.ProductSummary{ID: productID, Name: "Product " + productID, Price: decimal.NewFromInt(10)},
		Quantity: quantity,
	}
}

func TestCartHandler_GetItems(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}
	svc := new(MockCartService)
	svc.On("GetItems", mock.Anything, id).Return([]model.CartItemView{*testItemView("p1", 2)}, nil)

	h := NewCartHandler(svc, zerolog.Nop())
	req := requestWithIdentity(httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil), id)
	rec := httptest.NewRecorder()

	h.GetItems(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Cart items retrieved successfully", resp.Message)
}

func TestCartHandler_GetItems_MethodNotAllowed(t *testing.T) {
	h := NewCartHandler(new(MockCartService), zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/cart/get_items/", nil)
	rec := httptest.NewRecorder()

	h.GetItems(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCartHandler_AddItem(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}

	t.Run("with explicit quantity", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("AddItem", mock.Anything, id, "p1", 3).Return(testItemView("p1", 3), nil)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/add_item/", map[string]any{
			"product_id": "p1",
			"quantity":   3,
		}), id)
		rec := httptest.NewRecorder()

		h.AddItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeResponse(t, rec).Success)
		svc.AssertExpectations(t)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("AddItem", mock.Anything, id, "p1", 1).Return(testItemView("p1", 1), nil)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/add_item/", map[string]any{
			"product_id": "p1",
		}), id)
		rec := httptest.NewRecorder()

		h.AddItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing product_id rejected", func(t *testing.T) {
		svc := new(MockCartService)
		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/add_item/", map[string]any{
			"quantity": 3,
		}), id)
		rec := httptest.NewRecorder()

		h.AddItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decodeResponse(t, rec).Success)
		svc.AssertNotCalled(t, "AddItem")
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		h := NewCartHandler(new(MockCartService), zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/cart/add_item/", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()

		h.AddItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product maps to 404", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("AddItem", mock.Anything, id, "missing", 1).Return(nil, model.ErrProductNotFound)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/add_item/", map[string]any{
			"product_id": "missing",
		}), id)
		rec := httptest.NewRecorder()

		h.AddItem(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, decodeResponse(t, rec).Success)
	})

	t.Run("invalid quantity maps to 400", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("AddItem", mock.Anything, id, "p1", -1).Return(nil, model.ErrInvalidQuantity)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/add_item/", map[string]any{
			"product_id": "p1",
			"quantity":   -1,
		}), id)
		rec := httptest.NewRecorder()

		h.AddItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}

	t.Run("decrement returns updated line", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("RemoveItem", mock.Anything, id, "p1").Return(testItemView("p1", 1), nil)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/remove_item/", map[string]any{
			"product_id": "p1",
		}), id)
		rec := httptest.NewRecorder()

		h.RemoveItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Item quantity decreased successfully", resp.Message)
		assert.NotNil(t, resp.Data)
	})

	t.Run("deletion reported when quantity was one", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("RemoveItem", mock.Anything, id, "p1").Return(nil, nil)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/remove_item/", map[string]any{
			"product_id": "p1",
		}), id)
		rec := httptest.NewRecorder()

		h.RemoveItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, "Item removed from cart (quantity was 1)", resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("missing line maps to 404", func(t *testing.T) {
		svc := new(MockCartService)
		svc.On("RemoveItem", mock.Anything, id, "p9").Return(nil, model.ErrItemNotFound)

		h := NewCartHandler(svc, zerolog.Nop())
		req := requestWithIdentity(jsonRequest(t, http.MethodPost, "/cart/remove_item/", map[string]any{
			"product_id": "p9",
		}), id)
		rec := httptest.NewRecorder()

		h.RemoveItem(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCartHandler_ClearCart(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}

	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			svc := new(MockCartService)
			svc.On("Clear", mock.Anything, id).Return(nil)

			h := NewCartHandler(svc, zerolog.Nop())
			req := requestWithIdentity(httptest.NewRequest(method, "/cart/clear_cart/", nil), id)
			rec := httptest.NewRecorder()

			h.ClearCart(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, decodeResponse(t, rec).Success)
		})
	}

	t.Run("GET rejected", func(t *testing.T) {
		h := NewCartHandler(new(MockCartService), zerolog.Nop())
		req := httptest.NewRequest(http.MethodGet, "/cart/clear_cart/", nil)
		rec := httptest.NewRecorder()

		h.ClearCart(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestCartHandler_Summary(t *testing.T) {
	id := identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}
	svc := new(MockCartService)
	svc.On("Summary", mock.Anything, id).Return(&model.CartSummary{
		Items:          []model.CartItemView{*testItemView("p1", 2)},
		CartTotal:      decimal.RequireFromString("20.00"),
		DiscountAmount: decimal.Zero,
		FinalAmount:    decimal.RequireFromString("20.00"),
		ItemCount:      1,
	}, nil)

	h := NewCartHandler(svc, zerolog.Nop())
	req := requestWithIdentity(httptest.NewRequest(http.MethodGet, "/cart/summary/", nil), id)
	rec := httptest.NewRecorder()

	h.Summary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Cart summary retrieved successfully", resp.Message)
}
