package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/pantry-voice/pkg/pantry"
	"github.com/hazyhaar/pantry-voice/pkg/voice"
)

func testRouter(t *testing.T) (http.Handler, *pantry.Store) {
	t.Helper()
	store, err := pantry.OpenStore(filepath.Join(t.TempDir(), "pantry.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	lex := voice.DefaultLexicon()
	svc := &Service{Store: store, Resolver: voice.NewResolver(lex), Lexicon: lex}
	return NewRouter(svc, nil), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestResolveRoute(t *testing.T) {
	router, store := testRouter(t)
	if _, err := store.Insert(pantry.Item{Name: "Leite Integral", Category: pantry.CategoryDairy, CurrentQuantity: 2, MinQuantity: 1, Unit: pantry.UnitLiter}); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, router, "POST", "/v1/voice/resolve", map[string]any{
		"intent":       "consumir",
		"product_name": "leites",
		"amount":       1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Resolved voice.ResolvedAction `json:"resolved"`
		Decision voice.Decision       `json:"decision"`
	}
	decodeBody(t, rec, &resp)
	if resp.Decision.Op != voice.OpUpdate || resp.Decision.NewQuantity != 1 {
		t.Errorf("decision = %+v, want update to 1", resp.Decision)
	}

	// resolve never mutates
	it, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if it[0].CurrentQuantity != 2 {
		t.Errorf("quantity = %v after resolve, want 2", it[0].CurrentQuantity)
	}
}

func TestApplyRoute(t *testing.T) {
	router, store := testRouter(t)
	inserted, err := store.Insert(pantry.Item{Name: "Leite", Category: pantry.CategoryDairy, CurrentQuantity: 2, MinQuantity: 1, Unit: pantry.UnitLiter})
	if err != nil {
		t.Fatal(err)
	}

	// consume an existing item
	rec := doJSON(t, router, "POST", "/v1/voice/apply", map[string]any{
		"intent":       "consumir",
		"product_name": "leite",
		"amount":       1.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status string       `json:"status"`
		Reason string       `json:"reason"`
		Item   *pantry.Item `json:"item"`
	}
	decodeBody(t, rec, &resp)
	if resp.Status != StatusUpdated || resp.Item == nil || resp.Item.CurrentQuantity != 0.5 {
		t.Errorf("apply consume = %+v, want updated to 0.5", resp)
	}
	got, err := store.Get(inserted.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentQuantity != 0.5 {
		t.Errorf("stored quantity = %v, want 0.5", got.CurrentQuantity)
	}

	// add an unknown item creates it
	rec = doJSON(t, router, "POST", "/v1/voice/apply", map[string]any{
		"intent":       "comprar",
		"product_name": "shampoo",
		"amount":       2,
		"category":     "higiene",
	})
	decodeBody(t, rec, &resp)
	if resp.Status != StatusCreated || resp.Item == nil || resp.Item.ID == "" {
		t.Fatalf("apply create = %+v", resp)
	}
	if resp.Item.Category != pantry.CategoryHygiene || resp.Item.MinQuantity != 1 {
		t.Errorf("created item = %+v", resp.Item)
	}

	// rejection is a 200 with status rejected
	rec = doJSON(t, router, "POST", "/v1/voice/apply", map[string]any{
		"intent":       "consumir",
		"product_name": "caviar",
		"amount":       1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &resp)
	if resp.Status != StatusRejected || resp.Reason != voice.ReasonNotFound {
		t.Errorf("apply reject = %+v, want rejected not_found", resp)
	}
}

func TestTranscriptRoute(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/voice/transcript", map[string]any{
		"transcript": "Adicionar 2 bananas e 3 tomates, por favor",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Normalized string `json:"normalized"`
		Singular   string `json:"singular"`
	}
	decodeBody(t, rec, &resp)
	if resp.Singular != "adicionar 2 banana e 3 tomate por favor" {
		t.Errorf("singular = %q", resp.Singular)
	}
}

func TestItemsRoutes(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "POST", "/v1/items", map[string]any{
		"name":         "Arroz Branco",
		"category":     "cereais",
		"quantity":     2,
		"min_quantity": 1,
		"unit":         "kilo",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created pantry.Item
	decodeBody(t, rec, &created)
	if created.Category != pantry.CategoryCereals || created.Unit != pantry.UnitKilogram {
		t.Errorf("created = %+v", created)
	}

	rec = doJSON(t, router, "POST", "/v1/items", map[string]any{"name": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/v1/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Items []pantry.Item `json:"items"`
	}
	decodeBody(t, rec, &list)
	if len(list.Items) != 1 || list.Items[0].Name != "Arroz Branco" {
		t.Errorf("list = %+v", list.Items)
	}
}

func TestShoppingListRoute(t *testing.T) {
	router, store := testRouter(t)
	if _, err := store.Insert(pantry.Item{Name: "Leite", Category: pantry.CategoryDairy, CurrentQuantity: 0, MinQuantity: 2, Unit: pantry.UnitLiter}); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, router, "GET", "/v1/shopping-list", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []pantry.ShoppingItem `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 1 || resp.Items[0].NeededQuantity != 2 {
		t.Errorf("shopping list = %+v", resp.Items)
	}
}

func TestLexiconAndHealthRoutes(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, "GET", "/v1/lexicon", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lexicon status = %d", rec.Code)
	}
	var lex struct {
		Units      []pantry.Unit     `json:"units"`
		Categories []pantry.Category `json:"categories"`
	}
	decodeBody(t, rec, &lex)
	if len(lex.Units) != len(pantry.Units) || len(lex.Categories) != len(pantry.DefaultCategories) {
		t.Errorf("lexicon = %d units, %d categories", len(lex.Units), len(lex.Categories))
	}

	rec = doJSON(t, router, "GET", "/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}

func TestBadJSONBody(t *testing.T) {
	router, _ := testRouter(t)
	req := httptest.NewRequest("POST", "/v1/voice/resolve", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
