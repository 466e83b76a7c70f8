package repository

import "github.com/tojem/stock-taker-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para los ítems de inventario (DIP).
// Los ítems se crean y mantienen fuera de este sistema; aquí solo se leen y se
// actualiza el resultado de un conteo.
type ItemRepository interface {
	// ListAll devuelve todos los ítems de todas las categorías.
	ListAll() ([]entity.InventoryItem, error)
	// FindByID busca un ítem por ID en todas las categorías. nil si no existe.
	FindByID(id string) (*entity.InventoryItem, error)
	// UpdateCount registra el resultado de un conteo: nuevo stock, fecha de conteo
	// (hora del servidor) y marcador de sesión, en un único update por (categoría, id).
	UpdateCount(category, id string, newStock int, sessionID string) error
	// ClearSessionMarkers pone LastCountedInSessionID en null en todos los ítems.
	// Participa en la misma transacción que la creación de la sesión (ver TxRunner).
	ClearSessionMarkers() error
}
