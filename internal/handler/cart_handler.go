package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/comanda/internal/cart"
	"github.com/hitoshi/comanda/internal/middleware"
	"github.com/hitoshi/comanda/internal/model"
)

// CartHandler はカート関連のHTTPハンドラー。
type CartHandler struct {
	factory *StoreFactory
}

// NewCartHandler はCartHandlerを生成する。
func NewCartHandler(factory *StoreFactory) *CartHandler {
	return &CartHandler{factory: factory}
}

// cartResponse はカート系エンドポイントの共通レスポンス。
// 合計金額と合計数量は常に現在の明細から導出した値を返す。
type cartResponse struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
	Count int              `json:"count"`
}

// addItemRequest はPOST /api/cart/itemsのボディ。
// qty省略時は1個として扱う。
type addItemRequest struct {
	Dish cart.Dish `json:"dish"`
	Qty  *int      `json:"qty"`
}

// updateQtyRequest はPATCH /api/cart/items/{id}のボディ。
type updateQtyRequest struct {
	Qty int `json:"qty"`
}

// Get はGET /api/cartを処理する。
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	h.respond(w, store)
}

// AddItem はPOST /api/cart/itemsを処理する。
// 同一性キーが一致する既存明細には数量のみ加算される。
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("el cuerpo debe ser un objeto JSON"))
		return
	}
	if req.Dish == nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("falta el campo \"dish\""))
		return
	}

	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	store, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	store.AddItem(req.Dish, qty)
	h.respond(w, store)
}

// UpdateQty はPATCH /api/cart/items/{id}を処理する。
// qtyが0以下の場合は明細削除と等価。
func (h *CartHandler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("falta el ID del artículo"))
		return
	}

	var req updateQtyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("el cuerpo debe ser un objeto JSON"))
		return
	}

	store, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	store.UpdateQty(id, req.Qty)
	h.respond(w, store)
}

// RemoveItem はDELETE /api/cart/items/{id}を処理する。
// 存在しないIDでも200を返す（冪等）。
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("falta el ID del artículo"))
		return
	}

	store, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	store.RemoveItem(id)
	h.respond(w, store)
}

// Clear はDELETE /api/cartを処理する。
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	store.Clear()
	h.respond(w, store)
}

func (h *CartHandler) cartStore(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	store, err := h.factory.CartFor(r)
	if err != nil {
		slog.Error("failed to build cart store", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return nil, false
	}
	return store, true
}

func (h *CartHandler) respond(w http.ResponseWriter, store *cart.Store) {
	items := store.Items()
	if items == nil {
		items = []model.CartItem{}
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Items: items,
		Total: store.Total(),
		Count: store.Count(),
	})
}
