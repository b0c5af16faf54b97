package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/hitoshi/comanda/internal/location"
	"github.com/hitoshi/comanda/internal/middleware"
	"github.com/hitoshi/comanda/internal/model"
)

// LocationHandler は位置情報のHTTPハンドラー。
//
// 位置情報の取得自体はUIコラボレーター（ブラウザ）の責務で、結果だけが
// 報告される。サーバー側は状態機械と地図リンクの導出を担い、状態は
// クライアントごとにプロセス内で保持する。
type LocationHandler struct {
	mu     sync.Mutex
	stores map[string]*location.Store
}

// NewLocationHandler はLocationHandlerを生成する。
func NewLocationHandler() *LocationHandler {
	return &LocationHandler{stores: make(map[string]*location.Store)}
}

// reportedPosition はUIコラボレーターが報告した取得結果をProviderとして包む。
type reportedPosition struct {
	coords location.Coords
	err    error
}

func (p reportedPosition) CurrentPosition(ctx context.Context) (location.Coords, error) {
	return p.coords, p.err
}

// reportRequest はPOST /api/locationのボディ。
// deniedが真の場合、座標は無視して拒否として扱う。
type reportRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Denied bool     `json:"denied"`
}

// locationResponse は位置情報系エンドポイントのレスポンス。
type locationResponse struct {
	Status     location.Status  `json:"status"`
	Coords     *location.Coords `json:"coords,omitempty"`
	MapsLink   string           `json:"maps_link,omitempty"`
	OSMEmbed   string           `json:"osm_embed,omitempty"`
	CoordsText string           `json:"coords_text,omitempty"`
}

// Get はGET /api/locationを処理する。未報告のクライアントはidleを返す。
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	if store == nil {
		writeJSON(w, http.StatusOK, locationResponse{Status: location.StatusIdle})
		return
	}
	h.respond(w, store)
}

// Report はPOST /api/locationを処理する。
// UIコラボレーターが取得した座標（または拒否）を状態機械へ反映する。
func (h *LocationHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("el cuerpo debe ser un objeto JSON"))
		return
	}

	var provider location.Provider
	switch {
	case req.Denied:
		provider = reportedPosition{err: errors.New("geolocation permission denied")}
	case req.Lat != nil && req.Lng != nil:
		provider = reportedPosition{coords: location.Coords{Lat: *req.Lat, Lng: *req.Lng}}
	default:
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("faltan las coordenadas"))
		return
	}

	clientID, err := middleware.ClientIDFromContext(r.Context())
	if err != nil {
		slog.Error("failed to resolve client", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	store := location.New(provider)
	store.Request(r.Context())

	h.mu.Lock()
	h.stores[clientID] = store
	h.mu.Unlock()

	h.respond(w, store)
}

// Clear はDELETE /api/locationを処理する。座標を破棄してidleに戻す。
func (h *LocationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	if store != nil {
		store.Clear()
		h.respond(w, store)
		return
	}
	writeJSON(w, http.StatusOK, locationResponse{Status: location.StatusIdle})
}

// storeFor は現在のクライアントのStoreを返す。未登録の場合はnil（エラーではない）。
func (h *LocationHandler) storeFor(w http.ResponseWriter, r *http.Request) (*location.Store, bool) {
	clientID, err := middleware.ClientIDFromContext(r.Context())
	if err != nil {
		slog.Error("failed to resolve client", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return nil, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stores[clientID], true
}

func (h *LocationHandler) respond(w http.ResponseWriter, store *location.Store) {
	resp := locationResponse{Status: store.Status()}
	if coords, ok := store.Coords(); ok {
		resp.Coords = &coords
		resp.MapsLink = store.MapsLink()
		resp.OSMEmbed = store.OSMEmbed()
		resp.CoordsText = store.CoordsText()
	}
	writeJSON(w, http.StatusOK, resp)
}
