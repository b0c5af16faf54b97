package cart

import (
	"testing"

	"github.com/hitoshi/comanda/internal/state"
)

// --- モック ---

type mockRecorder struct {
	ops []string
}

func (m *mockRecorder) RecordCartOp(op string) { m.ops = append(m.ops, op) }

func newTestStore() *Store {
	registry := state.NewRegistry()
	return New(registry.Bucket("client-1"), nil)
}

// --- テスト ---

// TestAddItem_MergesByID は同一IDの追加が数量加算のみを行い、
// 名前と価格は先勝ちで保持されることを検証する。
func TestAddItem_MergesByID(t *testing.T) {
	store := newTestStore()

	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)
	store.AddItem(Dish{"id": "d-1", "name": "Otro Nombre", "price": 99.0}, 1)

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 merged item, got %d", len(items))
	}
	if items[0].Qty != 3 {
		t.Errorf("expected qty 3, got %d", items[0].Qty)
	}
	if items[0].Name != "Hamburguesa" || items[0].Price != 15.5 {
		t.Errorf("expected first-write-wins name/price, got %+v", items[0])
	}
}

// TestAddItem_DistinctIDsAppend は異なるIDの明細が挿入順で末尾に追加されることを検証する。
func TestAddItem_DistinctIDsAppend(t *testing.T) {
	store := newTestStore()

	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)
	store.AddItem(Dish{"id": "d-2", "name": "Papas", "price": 15.5}, 1)

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "d-1" || items[1].ID != "d-2" {
		t.Errorf("expected insertion order preserved, got %+v", items)
	}
}

// TestAddItem_Totals は合計金額と合計数量の導出を検証する。
// Hamburguesa 15.5×3 = 46.5、数量は3。
func TestAddItem_Totals(t *testing.T) {
	store := newTestStore()

	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 1)

	if got := store.Total(); got != 46.5 {
		t.Errorf("expected total 46.5, got %v", got)
	}
	if got := store.Count(); got != 3 {
		t.Errorf("expected count 3, got %d", got)
	}
}

// TestAddItem_IdentityFallback は同一性キーの導出優先順位（id → slug → name）を検証する。
func TestAddItem_IdentityFallback(t *testing.T) {
	store := newTestStore()

	store.AddItem(Dish{"slug": "lomo-saltado", "name": "Lomo Saltado", "price": 20.0}, 1)
	store.AddItem(Dish{"slug": "lomo-saltado", "name": "Lomo Saltado", "price": 20.0}, 1)
	store.AddItem(Dish{"name": "Inca Kola", "price": 5.0}, 1)

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected slug-keyed merge plus name-keyed item, got %d items", len(items))
	}
	if items[0].ID != "lomo-saltado" || items[0].Qty != 2 {
		t.Errorf("expected slug identity merge, got %+v", items[0])
	}
	if items[1].ID != "Inca Kola" {
		t.Errorf("expected name as identity fallback, got %+v", items[1])
	}
}

// TestAddItem_NumericIDStringified は数値IDが文字列化されてキーになることを検証する。
func TestAddItem_NumericIDStringified(t *testing.T) {
	store := newTestStore()

	// JSON経由の数値はfloat64で届く
	store.AddItem(Dish{"id": float64(7), "name": "Alitas", "price": 12.0}, 1)
	store.AddItem(Dish{"id": float64(7), "name": "Alitas", "price": 12.0}, 1)

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected numeric IDs to merge, got %d items", len(items))
	}
	if items[0].ID != "7" {
		t.Errorf("expected stringified ID \"7\", got %q", items[0].ID)
	}
}

// TestAddItem_RandomIDsNeverMerge は識別子を持たない料理同士が
// 決してマージされないことを検証する。
func TestAddItem_RandomIDsNeverMerge(t *testing.T) {
	store := newTestStore()
	ids := []string{"rand-1", "rand-2"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	store.AddItem(Dish{"price": 10.0}, 1)
	store.AddItem(Dish{"price": 10.0}, 1)

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 separate items, got %d", len(items))
	}
	if items[0].Name != "Plato" || items[1].Name != "Plato" {
		t.Errorf("expected fallback name Plato, got %+v", items)
	}
}

// TestAddItem_NonPositiveQtyIsNoop はqtyが1未満の追加が何もしないことを検証する。
func TestAddItem_NonPositiveQtyIsNoop(t *testing.T) {
	store := newTestStore()

	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 0)
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, -3)

	if got := len(store.Items()); got != 0 {
		t.Errorf("expected empty cart, got %d items", got)
	}
}

// TestAddItem_NegativePriceClampedToZero は負の価格が0に畳み込まれることを検証する。
func TestAddItem_NegativePriceClampedToZero(t *testing.T) {
	store := newTestStore()

	store.AddItem(Dish{"id": "d-1", "name": "Promo", "price": -5.0}, 2)

	if got := store.Total(); got != 0 {
		t.Errorf("expected total 0 for negative price, got %v", got)
	}
}

// TestRemoveItem は明細削除と、存在しないIDの削除が無害であることを検証する。
func TestRemoveItem(t *testing.T) {
	store := newTestStore()
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 1)
	store.AddItem(Dish{"id": "d-2", "name": "Papas", "price": 8.0}, 1)

	store.RemoveItem("d-1")
	store.RemoveItem("no-such-id")

	items := store.Items()
	if len(items) != 1 || items[0].ID != "d-2" {
		t.Errorf("expected only d-2 remaining, got %+v", items)
	}
}

// TestUpdateQty_SetsAbsoluteValue は数量が加算ではなく絶対値で設定されることを検証する。
func TestUpdateQty_SetsAbsoluteValue(t *testing.T) {
	store := newTestStore()
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)

	store.UpdateQty("d-1", 5)

	items := store.Items()
	if items[0].Qty != 5 {
		t.Errorf("expected absolute qty 5, got %d", items[0].Qty)
	}
}

// TestUpdateQty_ZeroRemovesItem はqty 0以下の更新が削除と等価であることを検証する。
func TestUpdateQty_ZeroRemovesItem(t *testing.T) {
	store := newTestStore()
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)
	store.AddItem(Dish{"id": "d-2", "name": "Papas", "price": 8.0}, 1)

	store.UpdateQty("d-1", 0)
	store.UpdateQty("d-2", -1)

	if got := len(store.Items()); got != 0 {
		t.Errorf("expected empty cart after zero/negative updates, got %d items", got)
	}
}

// TestUpdateQty_UnknownIDIsNoop は存在しないIDの更新が何もしないことを検証する。
func TestUpdateQty_UnknownIDIsNoop(t *testing.T) {
	store := newTestStore()
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)

	store.UpdateQty("no-such-id", 9)

	items := store.Items()
	if len(items) != 1 || items[0].Qty != 2 {
		t.Errorf("expected cart unchanged, got %+v", items)
	}
}

// TestClear はカートが無条件に空になることを検証する。
func TestClear(t *testing.T) {
	store := newTestStore()
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)

	store.Clear()

	if got := len(store.Items()); got != 0 {
		t.Errorf("expected empty cart, got %d items", got)
	}
	if store.Total() != 0 || store.Count() != 0 {
		t.Error("expected zero aggregates after clear")
	}
}

// TestStore_SharedBucket は同じBucketから生成した別ストアが
// 同じカートを観測することを検証する。
func TestStore_SharedBucket(t *testing.T) {
	registry := state.NewRegistry()
	bucket := registry.Bucket("client-1")

	first := New(bucket, nil)
	first.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 2)

	second := New(bucket, nil)
	if got := second.Count(); got != 2 {
		t.Errorf("expected shared state across stores, got count %d", got)
	}
}

// TestStore_CorruptedBucketValue は型の壊れたBucket値が空カートとして扱われることを検証する。
func TestStore_CorruptedBucketValue(t *testing.T) {
	registry := state.NewRegistry()
	bucket := registry.Bucket("client-1")
	bucket.Set("cart_items", "not a slice")

	store := New(bucket, nil)
	if got := len(store.Items()); got != 0 {
		t.Errorf("expected corrupted value treated as empty, got %d items", got)
	}

	// 破損値の上からでも通常操作が可能
	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 1)
	if got := store.Count(); got != 1 {
		t.Errorf("expected recovery after corrupted value, got count %d", got)
	}
}

// TestStore_RecordsOps はカート操作がメトリクスに記録されることを検証する。
func TestStore_RecordsOps(t *testing.T) {
	registry := state.NewRegistry()
	rec := &mockRecorder{}
	store := New(registry.Bucket("client-1"), rec)

	store.AddItem(Dish{"id": "d-1", "name": "Hamburguesa", "price": 15.5}, 1)
	store.UpdateQty("d-1", 2)
	store.RemoveItem("d-1")
	store.Clear()

	want := []string{"add", "update", "remove", "clear"}
	if len(rec.ops) != len(want) {
		t.Fatalf("expected %d ops, got %v", len(want), rec.ops)
	}
	for i, op := range want {
		if rec.ops[i] != op {
			t.Errorf("op %d: expected %q, got %q", i, op, rec.ops[i])
		}
	}
}
