package pantry

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "pantry.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreInsertAndGet(t *testing.T) {
	s := openTestStore(t)

	it, err := s.Insert(Item{
		Name:            "Leite Integral",
		Category:        CategoryDairy,
		CurrentQuantity: 2,
		MinQuantity:     1,
		Unit:            UnitLiter,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if it.ID == "" {
		t.Fatal("Insert did not assign an id")
	}
	if it.UpdatedAt.IsZero() {
		t.Error("Insert did not set UpdatedAt")
	}

	got, err := s.Get(it.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Leite Integral" || got.Category != CategoryDairy ||
		got.CurrentQuantity != 2 || got.MinQuantity != 1 || got.Unit != UnitLiter {
		t.Errorf("Get = %+v, want inserted item", got)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) err = %v, want ErrNotFound", err)
	}
}

func TestStoreListOrdered(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"Ovos", "Arroz Branco", "Leite"} {
		if _, err := s.Insert(Item{Name: name, Category: CategoryOthers, Unit: UnitBase}); err != nil {
			t.Fatalf("Insert %s: %v", name, err)
		}
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Arroz Branco", "Leite", "Ovos"}
	if len(items) != len(want) {
		t.Fatalf("List returned %d items, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].Name != w {
			t.Errorf("List[%d] = %q, want %q", i, items[i].Name, w)
		}
	}
}

func TestStoreUpdate(t *testing.T) {
	s := openTestStore(t)
	it, err := s.Insert(Item{Name: "Arroz", Category: CategoryCereals, CurrentQuantity: 1, MinQuantity: 1, Unit: UnitKilogram})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	it.Name = "Arroz Integral"
	it.CurrentQuantity = 3
	if err := s.Update(it); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Get(it.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Arroz Integral" || got.CurrentQuantity != 3 {
		t.Errorf("Get after update = %+v", got)
	}

	if err := s.Update(Item{ID: "nope", Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(nope) err = %v, want ErrNotFound", err)
	}
}

func TestStoreUpdateQuantity(t *testing.T) {
	s := openTestStore(t)
	it, err := s.Insert(Item{Name: "Leite", Category: CategoryDairy, CurrentQuantity: 2, Unit: UnitLiter})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.UpdateQuantity(it.ID, 5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	got, _ := s.Get(it.ID)
	if got.CurrentQuantity != 5 {
		t.Errorf("quantity = %v, want 5", got.CurrentQuantity)
	}

	// negative quantities are clamped to zero
	if err := s.UpdateQuantity(it.ID, -3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	got, _ = s.Get(it.ID)
	if got.CurrentQuantity != 0 {
		t.Errorf("quantity = %v, want 0 after clamp", got.CurrentQuantity)
	}

	if err := s.UpdateQuantity("nope", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateQuantity(nope) err = %v, want ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)
	it, err := s.Insert(Item{Name: "Leite", Category: CategoryDairy, Unit: UnitLiter})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.Delete(it.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(it.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(it.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestStoreShoppingList(t *testing.T) {
	s := openTestStore(t)
	seed := []Item{
		{Name: "Leite", Category: CategoryDairy, CurrentQuantity: 0.5, MinQuantity: 2, Unit: UnitLiter},
		{Name: "Arroz", Category: CategoryCereals, CurrentQuantity: 5, MinQuantity: 1, Unit: UnitKilogram},
		{Name: "Ovos", Category: CategoryOthers, CurrentQuantity: 0, MinQuantity: 12, Unit: UnitBase},
	}
	for _, it := range seed {
		if _, err := s.Insert(it); err != nil {
			t.Fatalf("Insert %s: %v", it.Name, err)
		}
	}

	list, err := s.ShoppingList()
	if err != nil {
		t.Fatalf("ShoppingList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ShoppingList returned %d items, want 2", len(list))
	}
	// ordered by category then name: dairy before others
	if list[0].Name != "Leite" || list[0].NeededQuantity != 1.5 {
		t.Errorf("ShoppingList[0] = %+v, want Leite needing 1.5", list[0])
	}
	if list[1].Name != "Ovos" || list[1].NeededQuantity != 12 {
		t.Errorf("ShoppingList[1] = %+v, want Ovos needing 12", list[1])
	}
}

func TestStoreCount(t *testing.T) {
	s := openTestStore(t)
	if n, err := s.Count(); err != nil || n != 0 {
		t.Fatalf("Count = %d, %v; want 0", n, err)
	}
	if _, err := s.Insert(Item{Name: "Leite", Category: CategoryDairy, Unit: UnitLiter}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if n, err := s.Count(); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v; want 1", n, err)
	}
}
