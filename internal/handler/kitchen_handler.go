package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hitoshi/comanda/internal/kitchen"
	"github.com/hitoshi/comanda/internal/middleware"
	"github.com/hitoshi/comanda/internal/model"
	"github.com/hitoshi/comanda/internal/session"
)

// KitchenHandler は店舗一覧のHTTPハンドラー。
// テナント解決のため読み取り専用のセッションを参照する。
type KitchenHandler struct {
	service *kitchen.Service
	factory *StoreFactory
}

// NewKitchenHandler はKitchenHandlerを生成する。
func NewKitchenHandler(service *kitchen.Service, factory *StoreFactory) *KitchenHandler {
	return &KitchenHandler{service: service, factory: factory}
}

// kitchenResponse はGET /api/kitchensのレスポンス。
type kitchenResponse struct {
	Kitchens []kitchen.Kitchen `json:"kitchens"`
	NextKey  string            `json:"next_key,omitempty"`
}

// List はGET /api/kitchensを処理する。
// クエリパラメータ: tenantId、limit、cursor、q（絞り込み）。
func (h *KitchenHandler) List(w http.ResponseWriter, r *http.Request) {
	store, err := h.factory.SessionFor(w, r, &session.CollectingNotifier{})
	if err != nil {
		slog.Error("failed to build session store", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("limit debe ser un número"))
			return
		}
		limit = parsed
	}

	page, err := h.service.List(r.Context(), kitchen.ListParams{
		TenantID: query.Get("tenantId"),
		User:     store.User(),
		Limit:    limit,
		Cursor:   query.Get("cursor"),
		Query:    query.Get("q"),
	})
	if err != nil {
		slog.Error("failed to list kitchens", slog.String("error", err.Error()))
		middleware.WriteErrorResponse(w, http.StatusBadGateway, model.NewKitchenFetchError())
		return
	}

	kitchens := page.Kitchens
	if kitchens == nil {
		kitchens = []kitchen.Kitchen{}
	}
	writeJSON(w, http.StatusOK, kitchenResponse{
		Kitchens: kitchens,
		NextKey:  page.NextKey,
	})
}
