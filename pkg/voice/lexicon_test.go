package voice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/pantry-voice/pkg/pantry"
)

func TestNormalizeUnit(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		input any
		want  pantry.Unit
	}{
		{"litros", pantry.UnitLiter},
		{"Litro", pantry.UnitLiter},
		{"lt", pantry.UnitLiter},
		{"kilo", pantry.UnitKilogram},
		{"Quilos", pantry.UnitKilogram},
		{"gramas", pantry.UnitGram},
		{"mililitros", pantry.UnitMilliliter},
		{"pacotes", pantry.UnitPackage},
		{"caixa", pantry.UnitBox},
		{"unidades", pantry.UnitBase},
		// canonical ids pass through
		{"kg", pantry.UnitKilogram},
		{"ml", pantry.UnitMilliliter},
		{"un", pantry.UnitBase},
		// unrecognized falls back to base
		{"boxes", pantry.UnitBase},
		{"galaxy", pantry.UnitBase},
		{"", pantry.UnitBase},
		{nil, pantry.UnitBase},
		{42, pantry.UnitBase},
	}
	for _, tt := range tests {
		if got := lex.NormalizeUnit(tt.input); got != tt.want {
			t.Errorf("NormalizeUnit(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		input any
		want  string
	}{
		{"laticínios", pantry.CategoryDairy},
		{"Laticinios", pantry.CategoryDairy},
		{"dairy", pantry.CategoryDairy},
		{"frutas e legumes", pantry.CategoryFruits},
		{"legumes", pantry.CategoryFruits},
		{"doces", pantry.CategorySweets},
		{"salgados", pantry.CategorySweets},
		{"bebidas", pantry.CategoryBeverage},
		{"drinks", pantry.CategoryBeverage},
		{"limpeza", pantry.CategoryCleaning},
		{"congelados", pantry.CategoryFrozen},
		// canonical ids and display names resolve through the registry
		{"fruits_vegetables", pantry.CategoryFruits},
		{"Cereais & Grãos", pantry.CategoryCereals},
		{"Padaria", pantry.CategoryBakery},
		// everything else is the catch-all
		{"outro", pantry.CategoryOthers},
		{"electronics", pantry.CategoryOthers},
		{"", pantry.CategoryOthers},
		{nil, pantry.CategoryOthers},
		{3.14, pantry.CategoryOthers},
	}
	for _, tt := range tests {
		if got := lex.NormalizeCategory(tt.input); got != tt.want {
			t.Errorf("NormalizeCategory(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func writeAliasFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverrides(t *testing.T) {
	lex := DefaultLexicon()
	path := writeAliasFile(t, `
units:
  garrafa: l
  lata: un
categories:
  racao: others
  temperos: cooking_baking
`)
	if err := lex.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	if got := lex.NormalizeUnit("garrafa"); got != pantry.UnitLiter {
		t.Errorf("NormalizeUnit(garrafa) = %q, want %q", got, pantry.UnitLiter)
	}
	if got := lex.NormalizeCategory("Temperos"); got != pantry.CategoryCooking {
		t.Errorf("NormalizeCategory(Temperos) = %q, want %q", got, pantry.CategoryCooking)
	}
	// builtins survive the merge
	if got := lex.NormalizeUnit("litros"); got != pantry.UnitLiter {
		t.Errorf("NormalizeUnit(litros) = %q after override load, want %q", got, pantry.UnitLiter)
	}
}

func TestLoadOverridesRejectsUnknownTargets(t *testing.T) {
	lex := DefaultLexicon()

	badUnit := writeAliasFile(t, "units:\n  garrafa: barrel\n")
	if err := lex.LoadOverrides(badUnit); err == nil {
		t.Error("LoadOverrides accepted an unknown unit target")
	}

	badCat := writeAliasFile(t, "categories:\n  racao: pets\n")
	if err := lex.LoadOverrides(badCat); err == nil {
		t.Error("LoadOverrides accepted an unknown category target")
	}

	// a failed load leaves the builtin tables intact
	if got := lex.NormalizeUnit("litros"); got != pantry.UnitLiter {
		t.Errorf("NormalizeUnit(litros) = %q after failed load, want %q", got, pantry.UnitLiter)
	}
}

func TestReload(t *testing.T) {
	lex := DefaultLexicon()

	// no override file loaded yet: no-op
	if err := lex.Reload(); err != nil {
		t.Fatalf("Reload without overrides: %v", err)
	}

	path := writeAliasFile(t, "units:\n  garrafa: l\n")
	if err := lex.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	if err := os.WriteFile(path, []byte("units:\n  garrafa: ml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := lex.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := lex.NormalizeUnit("garrafa"); got != pantry.UnitMilliliter {
		t.Errorf("NormalizeUnit(garrafa) = %q after reload, want %q", got, pantry.UnitMilliliter)
	}
}
