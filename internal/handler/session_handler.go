package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/comanda/internal/middleware"
	"github.com/hitoshi/comanda/internal/model"
	"github.com/hitoshi/comanda/internal/session"
)

// リクエストボディの上限（バイト）
const maxBodyBytes = 1 << 20

// SessionHandler はセッション関連のHTTPハンドラー。
type SessionHandler struct {
	factory *StoreFactory
}

// NewSessionHandler はSessionHandlerを生成する。
func NewSessionHandler(factory *StoreFactory) *SessionHandler {
	return &SessionHandler{factory: factory}
}

// sessionResponse はセッション系エンドポイントの共通レスポンス。
// ストアが発行した通知（トースト相当）を同梱する。
type sessionResponse struct {
	Session       session.Snapshot       `json:"session"`
	Notifications []session.Notification `json:"notifications,omitempty"`
}

// Login はPOST /api/session/loginを処理する。
// ボディの認証ペイロードは形式を問わずそのまま認証コラボレーターへ渡す。
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("el cuerpo debe ser un objeto JSON"))
		return
	}

	notifier := &session.CollectingNotifier{}
	store, err := h.factory.SessionFor(w, r, notifier)
	if err != nil {
		slog.Error("failed to build session store", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	if _, err := store.Login(r.Context(), payload); err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewAuthFailedError())
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Session:       store.Snapshot(),
		Notifications: notifier.Notifications,
	})
}

// Logout はPOST /api/session/logoutを処理する。
// 未ログイン状態でも200を返す（冪等）。
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	notifier := &session.CollectingNotifier{}
	store, err := h.factory.SessionFor(w, r, notifier)
	if err != nil {
		slog.Error("failed to build session store", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	store.Logout(r.Context())

	writeJSON(w, http.StatusOK, sessionResponse{
		Session:       store.Snapshot(),
		Notifications: notifier.Notifications,
	})
}

// Get はGET /api/sessionを処理する。
// ストア生成時のティア照合によって復元されたセッションを返す。
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, err := h.factory.SessionFor(w, r, &session.CollectingNotifier{})
	if err != nil {
		slog.Error("failed to build session store", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: store.Snapshot()})
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
