// Package location は端末位置情報の状態遷移と地図リンクの生成を提供する。
//
// 位置情報の取得自体はコラボレーター（Provider）の責務で、
// このパッケージは状態機械とリンク導出のみを担う。
package location

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// requestTimeout は位置情報取得のタイムアウト。
const requestTimeout = 10 * time.Second

// osmDelta はOSM埋め込みリンクのバウンディングボックス半径（度）。
const osmDelta = 0.01

// Status は位置情報取得の状態を表す。
type Status string

const (
	StatusIdle        Status = "idle"
	StatusLoading     Status = "loading"
	StatusGranted     Status = "granted"
	StatusDenied      Status = "denied"
	StatusUnsupported Status = "unsupported"
)

// Coords は座標を表す。
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Provider は位置情報取得コラボレーターのインターフェース。
type Provider interface {
	// CurrentPosition は現在位置を返す。拒否や取得失敗はエラーで表す。
	CurrentPosition(ctx context.Context) (Coords, error)
}

// Store は位置情報の状態を保持する。
// 状態遷移: idle → loading → granted | denied。Providerが無い環境ではunsupported。
type Store struct {
	mu       sync.Mutex
	provider Provider
	timeout  time.Duration
	status   Status
	coords   *Coords
}

// New はStoreを生成する。providerがnilの場合、Requestはunsupportedに遷移する。
func New(provider Provider) *Store {
	return &Store{
		provider: provider,
		timeout:  requestTimeout,
		status:   StatusIdle,
	}
}

// Request は位置情報を取得する。取得にはタイムアウトを適用する。
// 失敗時はdeniedに遷移し、座標は保持しない。エラーは返さない（状態で表現する）。
func (s *Store) Request(ctx context.Context) {
	s.mu.Lock()
	if s.provider == nil {
		s.status = StatusUnsupported
		s.mu.Unlock()
		return
	}
	s.status = StatusLoading
	provider, timeout := s.provider, s.timeout
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	coords, err := provider.CurrentPosition(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusDenied
		s.coords = nil
		return
	}
	s.status = StatusGranted
	s.coords = &coords
}

// Clear は座標を破棄してidleに戻す。
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coords = nil
	s.status = StatusIdle
}

// Status は現在の状態を返す。
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Coords は現在の座標を返す。未取得の場合はfalse。
func (s *Store) Coords() (Coords, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coords == nil {
		return Coords{}, false
	}
	return *s.coords, true
}

// MapsLink はGoogle Mapsへのリンクを返す。座標が無い場合は空文字。
func (s *Store) MapsLink() string {
	coords, ok := s.Coords()
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", coords.Lat, coords.Lng)
}

// OSMEmbed はOpenStreetMapの埋め込みリンクを返す。座標が無い場合は空文字。
// バウンディングボックスは座標±0.01度、境界は小数6桁で整形する。
func (s *Store) OSMEmbed() string {
	coords, ok := s.Coords()
	if !ok {
		return ""
	}
	minLon := fmt.Sprintf("%.6f", coords.Lng-osmDelta)
	minLat := fmt.Sprintf("%.6f", coords.Lat-osmDelta)
	maxLon := fmt.Sprintf("%.6f", coords.Lng+osmDelta)
	maxLat := fmt.Sprintf("%.6f", coords.Lat+osmDelta)
	return fmt.Sprintf(
		"https://www.openstreetmap.org/export/embed.html?bbox=%s,%s,%s,%s&layer=mapnik&marker=%v,%v",
		minLon, minLat, maxLon, maxLat, coords.Lat, coords.Lng,
	)
}

// CoordsText はクリップボード用の"lat,lng"表記を返す。座標が無い場合は空文字。
func (s *Store) CoordsText() string {
	coords, ok := s.Coords()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v,%v", coords.Lat, coords.Lng)
}
