package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/comanda/internal/middleware"
	"github.com/hitoshi/comanda/internal/model"
	"github.com/hitoshi/comanda/internal/theme"
)

// ThemeHandler はUIテーマ設定のHTTPハンドラー。
// テーマはクライアントごとの長期ストレージに保存される。
type ThemeHandler struct {
	factory *StoreFactory
	def     theme.Theme
}

// NewThemeHandler はThemeHandlerを生成する。
func NewThemeHandler(factory *StoreFactory, def theme.Theme) *ThemeHandler {
	return &ThemeHandler{factory: factory, def: def}
}

// themeResponse はテーマ系エンドポイントのレスポンス。
type themeResponse struct {
	Theme     theme.Theme `json:"theme"`
	BodyClass string      `json:"body_class"`
}

// putThemeRequest はPUT /api/themeのボディ。
type putThemeRequest struct {
	Theme string `json:"theme"`
}

// Get はGET /api/themeを処理する。
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.themeStore(w, r)
	if !ok {
		return
	}
	current := store.Current(r.Context())
	writeJSON(w, http.StatusOK, themeResponse{Theme: current, BodyClass: current.BodyClass()})
}

// Put はPUT /api/themeを処理する。
// "toggle"は現在値の反転、それ以外はlight/darkのみ受け付ける。
func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req putThemeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("el cuerpo debe ser un objeto JSON"))
		return
	}

	store, ok := h.themeStore(w, r)
	if !ok {
		return
	}

	var applied theme.Theme
	switch {
	case req.Theme == "toggle":
		applied = store.Toggle(r.Context())
	case theme.Theme(req.Theme).Valid():
		applied = store.Set(r.Context(), theme.Theme(req.Theme))
	default:
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidThemeError(req.Theme))
		return
	}

	writeJSON(w, http.StatusOK, themeResponse{Theme: applied, BodyClass: applied.BodyClass()})
}

func (h *ThemeHandler) themeStore(w http.ResponseWriter, r *http.Request) (*theme.Store, bool) {
	tier, err := h.factory.LongTierFor(r)
	if err != nil {
		slog.Error("failed to resolve storage tier", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return nil, false
	}
	return theme.New(tier, h.def), true
}
