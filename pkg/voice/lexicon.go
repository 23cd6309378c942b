package voice

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/pantry-voice/pkg/pantry"
)

// builtinUnitAliases maps normalized surface forms to canonical units.
// Portuguese and English live in the same table; the upstream extractor
// does not tag the language.
var builtinUnitAliases = map[string]pantry.Unit{
	"unidade": pantry.UnitBase, "unidades": pantry.UnitBase,
	"unit": pantry.UnitBase, "units": pantry.UnitBase,
	"litro": pantry.UnitLiter, "litros": pantry.UnitLiter, "lt": pantry.UnitLiter,
	"kilo": pantry.UnitKilogram, "kilos": pantry.UnitKilogram,
	"quilo": pantry.UnitKilogram, "quilos": pantry.UnitKilogram,
	"grama": pantry.UnitGram, "gramas": pantry.UnitGram,
	"mililitro": pantry.UnitMilliliter, "mililitros": pantry.UnitMilliliter,
	"pack": pantry.UnitPackage, "package": pantry.UnitPackage,
	"pacote": pantry.UnitPackage, "pacotes": pantry.UnitPackage,
	"box": pantry.UnitBox, "caixa": pantry.UnitBox, "caixas": pantry.UnitBox,
}

var builtinCategoryAliases = map[string]string{
	"cereal": pantry.CategoryCereals, "cereais": pantry.CategoryCereals,
	"grao": pantry.CategoryCereals, "graos": pantry.CategoryCereals,
	"graos e cereais": pantry.CategoryCereals,
	"fruta": pantry.CategoryFruits, "frutas": pantry.CategoryFruits,
	"legume": pantry.CategoryFruits, "legumes": pantry.CategoryFruits,
	"frutas e legumes": pantry.CategoryFruits,
	"enlatado": pantry.CategoryCanned, "enlatados": pantry.CategoryCanned,
	"carne": pantry.CategoryMeatFish, "carnes": pantry.CategoryMeatFish,
	"peixe": pantry.CategoryMeatFish, "peixes": pantry.CategoryMeatFish,
	"carnes e peixes": pantry.CategoryMeatFish,
	"padaria": pantry.CategoryBakery, "bakery": pantry.CategoryBakery,
	"culinaria": pantry.CategoryCooking, "confeitaria": pantry.CategoryCooking,
	"culinaria e confeitaria": pantry.CategoryCooking,
	"doce": pantry.CategorySweets, "doces": pantry.CategorySweets,
	"salgado": pantry.CategorySweets, "salgados": pantry.CategorySweets,
	"doces e salgados": pantry.CategorySweets,
	"laticinio": pantry.CategoryDairy, "laticinios": pantry.CategoryDairy,
	"dairy": pantry.CategoryDairy,
	"bebida": pantry.CategoryBeverage, "bebidas": pantry.CategoryBeverage,
	"drink": pantry.CategoryBeverage, "drinks": pantry.CategoryBeverage,
	"limpeza": pantry.CategoryCleaning,
	"hygiene": pantry.CategoryHygiene, "higiene": pantry.CategoryHygiene,
	"congelado": pantry.CategoryFrozen, "congelados": pantry.CategoryFrozen,
	"frozen": pantry.CategoryFrozen,
	"outro": pantry.CategoryOthers, "outros": pantry.CategoryOthers,
}

// Lexicon resolves free-form unit and category words to the canonical
// closed sets. The unit list and category registry are injected so the
// host owns them; built-in aliases can be extended with a YAML override
// file that is hot-reloadable.
type Lexicon struct {
	mu            sync.RWMutex
	units         []pantry.Unit
	categories    []pantry.Category
	unitAliases   map[string]pantry.Unit
	catAliases    map[string]string
	overridesPath string
}

// NewLexicon builds a lexicon over the given category registry and
// canonical unit list.
func NewLexicon(categories []pantry.Category, units []pantry.Unit) *Lexicon {
	l := &Lexicon{
		units:      units,
		categories: categories,
	}
	l.rebuild(nil)
	return l
}

// DefaultLexicon builds a lexicon over the built-in registries.
func DefaultLexicon() *Lexicon {
	return NewLexicon(pantry.DefaultCategories, pantry.Units)
}

// aliasOverrides is the schema of the YAML override file.
type aliasOverrides struct {
	Units      map[string]string `yaml:"units"`
	Categories map[string]string `yaml:"categories"`
}

// LoadOverrides merges extra aliases from a YAML file. Alias keys are
// normalized before insertion; targets must be canonical ids. The path
// is remembered so Reload picks up edits.
func (l *Lexicon) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read alias overrides %s: %w", path, err)
	}
	var ov aliasOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("parse alias overrides %s: %w", path, err)
	}

	l.mu.RLock()
	units, categories := l.units, l.categories
	l.mu.RUnlock()

	for alias, target := range ov.Units {
		if !unitKnown(units, pantry.Unit(target)) {
			return fmt.Errorf("alias overrides %s: unit alias %q targets unknown unit %q", path, alias, target)
		}
	}
	for alias, target := range ov.Categories {
		if !categoryKnown(categories, target) {
			return fmt.Errorf("alias overrides %s: category alias %q targets unknown category %q", path, alias, target)
		}
	}

	l.mu.Lock()
	l.overridesPath = path
	l.rebuild(&ov)
	l.mu.Unlock()
	return nil
}

// Reload re-reads the override file last passed to LoadOverrides.
// Without one it is a no-op.
func (l *Lexicon) Reload() error {
	l.mu.RLock()
	path := l.overridesPath
	l.mu.RUnlock()
	if path == "" {
		return nil
	}
	return l.LoadOverrides(path)
}

// rebuild recomputes the alias maps from builtins plus overrides.
// Callers must hold the write lock (or own the lexicon exclusively).
func (l *Lexicon) rebuild(ov *aliasOverrides) {
	ua := make(map[string]pantry.Unit, len(builtinUnitAliases))
	for k, v := range builtinUnitAliases {
		ua[k] = v
	}
	ca := make(map[string]string, len(builtinCategoryAliases))
	for k, v := range builtinCategoryAliases {
		ca[k] = v
	}
	if ov != nil {
		for alias, target := range ov.Units {
			if key := NormalizeText(alias); key != "" {
				ua[key] = pantry.Unit(target)
			}
		}
		for alias, target := range ov.Categories {
			if key := NormalizeText(alias); key != "" {
				ca[key] = target
			}
		}
	}
	l.unitAliases = ua
	l.catAliases = ca
}

// NormalizeUnit resolves a free-form unit value to a canonical unit.
// Any value is accepted (stringified first); unrecognized input falls
// back to the base unit. Never fails.
func (l *Lexicon) NormalizeUnit(raw any) pantry.Unit {
	normalized := NormalizeText(stringify(raw))

	l.mu.RLock()
	defer l.mu.RUnlock()

	if u, ok := l.unitAliases[normalized]; ok {
		return u
	}
	if unitKnown(l.units, pantry.Unit(normalized)) {
		return pantry.Unit(normalized)
	}
	return pantry.UnitBase
}

// NormalizeCategory resolves a free-form category value to a canonical
// category id. After the alias table it falls back to matching the
// normalized id or display name of each registry entry; anything else
// is "others". Never fails.
func (l *Lexicon) NormalizeCategory(raw any) string {
	normalized := NormalizeText(stringify(raw))
	if normalized == "" {
		return pantry.CategoryOthers
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if id, ok := l.catAliases[normalized]; ok {
		return id
	}
	for _, c := range l.categories {
		if NormalizeText(c.ID) == normalized || NormalizeText(c.Name) == normalized {
			return c.ID
		}
	}
	return pantry.CategoryOthers
}

// Categories returns the injected category registry.
func (l *Lexicon) Categories() []pantry.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.categories
}

// Units returns the injected canonical unit list.
func (l *Lexicon) Units() []pantry.Unit {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.units
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func unitKnown(units []pantry.Unit, u pantry.Unit) bool {
	for _, known := range units {
		if known == u {
			return true
		}
	}
	return false
}

func categoryKnown(categories []pantry.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
