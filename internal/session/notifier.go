package session

import "log/slog"

// 通知レベル
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Notification はUIに表示する通知（トースト相当）を表す。
type Notification struct {
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier はストアからのUI通知を受け取るインターフェース。
type Notifier interface {
	Notify(n Notification)
}

// SlogNotifier は通知を構造化ログとして記録するNotifier。
// UIコラボレーターが存在しないモード（ワーカー等）でのデフォルト実装。
type SlogNotifier struct{}

// Notify は通知をInfoレベルのログとして出力する。
func (SlogNotifier) Notify(n Notification) {
	slog.Info("session notification",
		slog.String("level", n.Level),
		slog.String("title", n.Title),
		slog.String("description", n.Description),
	)
}

// CollectingNotifier は通知をスライスに蓄積するNotifier。
// ハンドラーがレスポンスに通知を載せるために使用する。
type CollectingNotifier struct {
	Notifications []Notification
}

// Notify は通知を蓄積する。
func (c *CollectingNotifier) Notify(n Notification) {
	c.Notifications = append(c.Notifications, n)
}

// compile-time interface checks
var (
	_ Notifier = SlogNotifier{}
	_ Notifier = (*CollectingNotifier)(nil)
)
