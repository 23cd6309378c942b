// Package pantry holds the inventory domain: canonical units and
// categories, the pantry item record, and the SQLite-backed store.
package pantry

import "time"

// Unit is a canonical unit identifier. The set is closed: every
// free-form unit word resolves to one of these (see pkg/voice).
type Unit string

const (
	UnitBase       Unit = "un" // base unit, also the fallback
	UnitKilogram   Unit = "kg"
	UnitLiter      Unit = "l"
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPackage    Unit = "package"
	UnitBox        Unit = "box"
)

// Units lists all canonical units.
var Units = []Unit{UnitBase, UnitKilogram, UnitLiter, UnitGram, UnitMilliliter, UnitPackage, UnitBox}

// Category is one entry of the category registry: a canonical id plus
// the display name shown to users.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Canonical category ids. CategoryOthers is the catch-all every
// unrecognized category resolves to.
const (
	CategoryCereals  = "cereals_grains"
	CategoryFruits   = "fruits_vegetables"
	CategoryCanned   = "canned_goods"
	CategoryMeatFish = "meat_fish"
	CategoryBakery   = "bakery"
	CategoryCooking  = "cooking_baking"
	CategorySweets   = "sweets_savory_snacks"
	CategoryDairy    = "dairy"
	CategoryCleaning = "cleaning"
	CategoryHygiene  = "hygiene"
	CategoryBeverage = "beverages"
	CategoryFrozen   = "frozen"
	CategoryOthers   = "others"
)

// DefaultCategories is the built-in category registry.
var DefaultCategories = []Category{
	{ID: CategoryCereals, Name: "Cereais & Grãos"},
	{ID: CategoryFruits, Name: "Frutas e Legumes"},
	{ID: CategoryCanned, Name: "Enlatados"},
	{ID: CategoryMeatFish, Name: "Carnes e Peixes"},
	{ID: CategoryBakery, Name: "Padaria"},
	{ID: CategoryCooking, Name: "Culinária e Confeitaria"},
	{ID: CategorySweets, Name: "Doces e Salgados"},
	{ID: CategoryDairy, Name: "Laticínios"},
	{ID: CategoryCleaning, Name: "Limpeza"},
	{ID: CategoryHygiene, Name: "Higiene"},
	{ID: CategoryBeverage, Name: "Bebidas"},
	{ID: CategoryFrozen, Name: "Congelados"},
	{ID: CategoryOthers, Name: "Outros"},
}

// Item is a single pantry inventory record.
type Item struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CurrentQuantity float64   `json:"current_quantity"`
	MinQuantity     float64   `json:"min_quantity"`
	Unit            Unit      `json:"unit"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ShoppingItem is a pantry item that fell below its minimum quantity.
type ShoppingItem struct {
	Item
	NeededQuantity float64 `json:"needed_quantity"`
}
