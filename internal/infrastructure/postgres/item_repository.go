package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
// Las tres "colecciones" de ítems del taller viven en una sola tabla con columna
// category; la clave del documento es (category, id).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, category, name, current_stock, stock_take_method,
		tare_weight, unit_weight, last_counted_at, last_counted_in_session_id`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.Category, &it.Name, &it.CurrentStock, &it.StockTakeMethod,
		&it.TareWeight, &it.UnitWeight, &it.LastCountedAt, &it.LastCountedInSessionID,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListAll devuelve todos los ítems de todas las categorías.
func (r *ItemRepo) ListAll() ([]entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// FindByID busca un ítem por ID en todas las categorías. nil si no existe.
func (r *ItemRepo) FindByID(id string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return it, nil
}

// UpdateCount registra el resultado del conteo: stock, fecha del servidor y
// marcador de sesión, en un único update por (categoría, id).
func (r *ItemRepo) UpdateCount(category, id string, newStock int, sessionID string) error {
	query := `
		UPDATE inventory_items
		SET current_stock = $3, last_counted_at = now(), last_counted_in_session_id = $4
		WHERE category = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query, category, id, newStock, sessionID)
	if err != nil {
		return fmt.Errorf("update count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update count: ítem %s/%s no existe", category, id)
	}
	return nil
}

// ClearSessionMarkers pone el marcador de sesión en null en todos los ítems.
// Pensado para ejecutarse con el Querier de la transacción de inicio de sesión.
func (r *ItemRepo) ClearSessionMarkers() error {
	query := `
		UPDATE inventory_items
		SET last_counted_in_session_id = NULL
		WHERE last_counted_in_session_id IS NOT NULL`
	if _, err := r.q.Exec(context.Background(), query); err != nil {
		return fmt.Errorf("clear session markers: %w", err)
	}
	return nil
}
