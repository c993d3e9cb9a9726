// Package sample provee datos de muestra en memoria para el dashboard mientras
// el backend no expone inventario agregado por provincia.
package sample

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/internal/domain/repository"
)

var _ repository.CatalogRepository = (*Catalog)(nil)

// Catalog inventario de muestra. Es seguro para uso concurrente.
type Catalog struct {
	mu        sync.RWMutex
	items     []entity.InventoryItem
	provinces []entity.ProvinceStock
	nextID    int
}

// NewCatalog construye el catálogo; los vencimientos se calculan desde now.
func NewCatalog(now time.Time) *Catalog {
	items := seedItems(now)
	return &Catalog{items: items, provinces: seedProvinces(), nextID: len(items) + 1}
}

func (c *Catalog) Items(_ context.Context) ([]entity.InventoryItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.InventoryItem(nil), c.items...), nil
}

// AddItem agrega el ítem asignándole el siguiente código INVnnn si no trae ID.
func (c *Catalog) AddItem(_ context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.ID == "" {
		item.ID = fmt.Sprintf("INV%03d", c.nextID)
	}
	c.nextID++
	c.items = append(c.items, item)
	return item, nil
}

func (c *Catalog) Provinces(_ context.Context) ([]entity.ProvinceStock, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.ProvinceStock(nil), c.provinces...), nil
}

// ── Datos ────────────────────────────────────────────────────────────────────

type seed struct {
	name      string
	category  entity.ItemCategory
	qty       int
	unit      string
	expiresIn int // días; 0 = no vence
	location  string
	province  string
	district  string
	minLevel  int
	reorder   int
	price     string
}

var seeds = []seed{
	{"Surgical Masks", entity.CategorySupplies, 15, "box", 0, "Harare Central Hospital", "Harare", "Harare Central", 20, 60, "8.50"},
	{"Nitrile Gloves (M)", entity.CategorySupplies, 20, "box", 0, "Parirenyatwa Hospital", "Harare", "Harare Central", 25, 80, "11.00"},
	{"Amoxicillin 500mg", entity.CategoryMedications, 150, "tablet", 240, "Gweru Provincial Hospital", "Midlands", "Gweru", 100, 300, "0.12"},
	{"Blood Pressure Monitor", entity.CategoryEquipment, 12, "unit", 0, "Mutare Provincial Hospital", "Manicaland", "Mutare", 2, 5, "65.00"},
	{"Syringes 5ml", entity.CategorySupplies, 400, "pack", 0, "Chitungwiza Central Hospital", "Harare", "Chitungwiza", 200, 500, "4.20"},
	{"Paracetamol 500mg", entity.CategoryMedications, 4200, "tablet", 400, "Bulawayo Central Hospital", "Bulawayo", "Bulawayo Central", 500, 1500, "0.03"},
	{"Gauze Swabs", entity.CategorySupplies, 640, "pack", 0, "Mpilo Hospital", "Bulawayo", "Bulawayo East", 100, 300, "2.10"},
	{"Pulse Oximeter", entity.CategoryEquipment, 9, "unit", 0, "Chinhoyi Provincial Hospital", "Mashonaland West", "Chinhoyi", 2, 4, "38.00"},
	{"Metformin 850mg", entity.CategoryMedications, 1800, "tablet", 300, "Marondera Provincial Hospital", "Mashonaland East", "Marondera", 300, 900, "0.05"},
	{"Examination Gloves (L)", entity.CategorySupplies, 300, "box", 0, "Bindura Provincial Hospital", "Mashonaland Central", "Bindura", 50, 150, "9.80"},
	{"Malaria Test Kits", entity.CategorySupplies, 8, "box", 180, "Hwange District Hospital", "Matabeleland North", "Hwange", 10, 40, "24.00"},
	{"Polio Vaccine", entity.CategoryVaccines, 220, "vial", 30, "Masvingo Provincial Hospital", "Masvingo", "Masvingo City", 50, 150, "1.90"},
	{"Insulin (Regular)", entity.CategoryMedications, 60, "vial", 7, "Mutare Provincial Hospital", "Manicaland", "Mutare", 20, 50, "6.40"},
	{"Oral Rehydration Salts", entity.CategoryMedications, 90, "pack", 500, "Chipinge District Hospital", "Manicaland", "Chipinge", 50, 120, "0.45"},
	{"Artemether/Lumefantrine", entity.CategoryMedications, 2600, "tablet", 365, "Binga District Hospital", "Matabeleland North", "Binga", 400, 1200, "0.20"},
	{"Surgical Sutures", entity.CategorySupplies, 35, "box", 0, "Gwanda Provincial Hospital", "Matabeleland South", "Gwanda", 40, 100, "18.00"},
	{"Measles Vaccine", entity.CategoryVaccines, 1100, "vial", 120, "Kwekwe General Hospital", "Midlands", "Kwekwe", 150, 400, "2.30"},
	{"BCG Vaccine", entity.CategoryVaccines, 80, "vial", 20, "Beitbridge District Hospital", "Matabeleland South", "Beitbridge", 40, 100, "1.60"},
	{"Thermometer (Digital)", entity.CategoryEquipment, 60, "unit", 0, "Kariba District Hospital", "Mashonaland West", "Kariba", 10, 25, "7.50"},
	{"Ceftriaxone 1g", entity.CategoryMedications, 45, "vial", 200, "Chiredzi District Hospital", "Masvingo", "Chiredzi", 50, 120, "1.35"},
	{"IV Giving Sets", entity.CategorySupplies, 180, "unit", 0, "Mutoko District Hospital", "Mashonaland East", "Mutoko", 60, 150, "1.10"},
	{"Nebulizer", entity.CategoryEquipment, 3, "unit", 0, "Shamva District Hospital", "Mashonaland Central", "Shamva", 1, 3, "120.00"},
	{"Tetanus Toxoid", entity.CategoryVaccines, 340, "vial", 90, "Harare Central Hospital", "Harare", "Harare Central", 60, 150, "0.85"},
	{"Hydrochlorothiazide 25mg", entity.CategoryMedications, 980, "tablet", 150, "Bulawayo Central Hospital", "Bulawayo", "Bulawayo Central", 200, 600, "0.04"},
}

func seedItems(now time.Time) []entity.InventoryItem {
	items := make([]entity.InventoryItem, 0, len(seeds))
	for i, s := range seeds {
		item := entity.InventoryItem{
			ID:           fmt.Sprintf("INV%03d", i+1),
			Name:         s.name,
			Category:     s.category,
			Quantity:     s.qty,
			Unit:         s.unit,
			Location:     s.location,
			Province:     s.province,
			District:     s.district,
			MinLevel:     s.minLevel,
			ReorderLevel: s.reorder,
			UnitPrice:    decimal.RequireFromString(s.price),
		}
		if s.expiresIn > 0 {
			d := entity.NewDate(now.Year(), now.Month(), now.Day()+s.expiresIn)
			item.ExpiryDate = &d
		}
		items = append(items, item)
	}
	return items
}
