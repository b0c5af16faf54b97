// Package model はドメインモデルを定義する。
package model

// CartItem はカート内の1行（集約済み明細）を表す。
// IDは追加時に一度だけ導出される同一性キーで、以降のマージ判定に使用する。
type CartItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Subtotal はこの明細の小計（単価×数量）を返す。
// 破損したエントリを許容するため、負値は0として扱う。
func (i CartItem) Subtotal() float64 {
	price := i.Price
	if price < 0 {
		price = 0
	}
	qty := i.Qty
	if qty < 0 {
		qty = 0
	}
	return price * float64(qty)
}
