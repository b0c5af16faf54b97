// Package cart は注文カートの状態と集計を提供する。
//
// カートは挿入順を保持するID重複なしの明細リストで、プロセス内の
// リアクティブ状態にのみ保存される（永続ティアは持たない）。
// 寿命はアプリケーションセッションと同じ。
package cart

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/hitoshi/comanda/internal/model"
	"github.com/hitoshi/comanda/internal/state"
)

// itemsKey はリアクティブ状態内で明細リストを保持するキー。
const itemsKey = "cart_items"

// defaultDishName は名前を持たない料理のフォールバック表示名。
const defaultDishName = "Plato"

// Dish は追加対象の料理レコード。メニューAPIの形状をそのまま受け取る。
// id/slug/name/priceフィールドを期待するが、いずれも欠けていてよい。
type Dish map[string]any

// Recorder はカート操作メトリクスの記録インターフェース。
type Recorder interface {
	RecordCartOp(op string)
}

// Store は1クライアント分のカートを保持する。
// 同一性キーによるマージと派生集計（合計金額・数量）を提供する。
type Store struct {
	mu      sync.Mutex
	bucket  *state.Bucket
	metrics Recorder // nil可

	// newID は安定した識別子を持たない料理へのフォールバックID生成器。
	// テストで差し替え可能。
	newID func() string
}

// New はStoreを生成する。明細はbucket内の既存値を引き継ぐ。
func New(bucket *state.Bucket, metrics Recorder) *Store {
	return &Store{
		bucket:  bucket,
		metrics: metrics,
		newID:   uuid.NewString,
	}
}

// AddItem は料理をカートへ追加する。
//
// 同一性キーは追加時に1回だけ導出する。優先順位はid → slug → name、
// いずれも存在しない場合はランダムなUUID（ランダムIDの明細同士は決してマージされない）。
// 導出キーが既存明細と一致する場合は数量のみを加算し、名前と価格は
// 先勝ちで保持する。一致しない場合は末尾に追加する。
//
// qtyが1未満の呼び出しは何もしない。UpdateQtyの「非正数は不在」の規則と
// 整合させるための仕様で、非正数の明細がカートに入ることはない。
func (s *Store) AddItem(dish Dish, qty int) {
	if qty < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.deriveID(dish)
	items := s.load()

	for i := range items {
		if items[i].ID == id {
			items[i].Qty += qty
			s.save(items)
			s.record("add")
			return
		}
	}

	items = append(items, model.CartItem{
		ID:    id,
		Name:  dishName(dish),
		Price: coercePrice(dish["price"]),
		Qty:   qty,
	})
	s.save(items)
	s.record("add")
}

// RemoveItem は指定IDの明細を削除する。存在しない場合は何もしない。
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	for i := range items {
		if items[i].ID == id {
			s.save(append(items[:i], items[i+1:]...))
			s.record("remove")
			return
		}
	}
}

// UpdateQty は指定IDの明細の数量を絶対値で設定する。
// qtyが0以下の場合は明細を削除する（RemoveItemと等価）。
// IDが見つからない場合は何もしない。
func (s *Store) UpdateQty(id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if qty <= 0 {
			s.save(append(items[:i], items[i+1:]...))
		} else {
			items[i].Qty = qty
			s.save(items)
		}
		s.record("update")
		return
	}
}

// Clear はカートを無条件に空にする。
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.save(nil)
	s.record("clear")
}

// Items は明細リストのコピーを挿入順で返す。
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

// Total は合計金額（Σ 単価×数量）を返す。
// 毎回現在の状態から再計算される純粋な導出値で、
// 破損したエントリは0として許容する。
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.load() {
		total += item.Subtotal()
	}
	return total
}

// Count は合計数量（Σ 数量）を返す。
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.load() {
		if item.Qty > 0 {
			count += item.Qty
		}
	}
	return count
}

// load はリアクティブ状態から明細リストを取得する。
// 型が壊れている値は空リストとして扱う。
func (s *Store) load() []model.CartItem {
	v, ok := s.bucket.Get(itemsKey)
	if !ok {
		return nil
	}
	items, ok := v.([]model.CartItem)
	if !ok {
		return nil
	}
	return items
}

// save は明細リストをリアクティブ状態へ書き戻す。
func (s *Store) save(items []model.CartItem) {
	s.bucket.Set(itemsKey, items)
}

func (s *Store) record(op string) {
	if s.metrics != nil {
		s.metrics.RecordCartOp(op)
	}
}

// deriveID は料理レコードから同一性キーを導出する。
// 存在判定はフィールドの有無（非nil）で行い、値は文字列化する。
func (s *Store) deriveID(dish Dish) string {
	for _, field := range []string{"id", "slug", "name"} {
		if v, ok := dish[field]; ok && v != nil {
			if id := stringify(v); id != "" {
				return id
			}
		}
	}
	return s.newID()
}

// dishName は表示名を返す。nameフィールドが文字列でない場合はフォールバック。
func dishName(dish Dish) string {
	if name, ok := dish["name"].(string); ok && name != "" {
		return name
	}
	return defaultDishName
}

// stringify は同一性キー用の文字列化を行う。
// JSON由来の数値（float64）は整数表記を優先する。
func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// coercePrice は価格フィールドを数値へ強制変換する。
// 数値でない・パースできない・負の値は0に畳み込む。
func coercePrice(v any) float64 {
	var price float64
	switch value := v.(type) {
	case float64:
		price = value
	case int:
		price = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		price = parsed
	default:
		return 0
	}
	if price < 0 {
		return 0
	}
	return price
}
