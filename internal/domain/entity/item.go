package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de inventario del taller. Conjunto fijo; cada ítem vive en exactamente una.
const (
	CategoryComponents       = "components"
	CategoryRawMaterials     = "raw_materials"
	CategoryWorkshopSupplies = "workshop_supplies"
)

// Categories devuelve las categorías conocidas en orden estable.
func Categories() []string {
	return []string{CategoryComponents, CategoryRawMaterials, CategoryWorkshopSupplies}
}

// ValidCategory indica si name es una categoría conocida.
func ValidCategory(name string) bool {
	switch name {
	case CategoryComponents, CategoryRawMaterials, CategoryWorkshopSupplies:
		return true
	}
	return false
}

// StockTakeMethod método de conteo de un ítem: unidades directas o peso total.
type StockTakeMethod string

const (
	MethodCount  StockTakeMethod = "count"
	MethodWeight StockTakeMethod = "weight"
)

// InventoryItem ítem de inventario del taller. El ID es único dentro de su categoría
// y es el texto impreso en el código QR de la estantería.
// LastCountedInSessionID es el marcador de sesión: nil = pendiente en la sesión actual;
// se limpia en bloque (todas las categorías) al iniciar una sesión nueva.
type InventoryItem struct {
	ID              string
	Category        string
	Name            string
	CurrentStock    int
	StockTakeMethod StockTakeMethod

	// Solo relevantes cuando StockTakeMethod == weight.
	TareWeight decimal.Decimal // peso del contenedor vacío (g)
	UnitWeight decimal.Decimal // peso de una unidad (g); debe ser > 0 para derivar cantidad

	LastCountedAt          *time.Time
	LastCountedInSessionID *string
}

// CountedIn indica si el ítem ya fue contado en la sesión dada.
func (i InventoryItem) CountedIn(sessionID string) bool {
	return i.LastCountedInSessionID != nil && *i.LastCountedInSessionID == sessionID
}
