package dto

import (
	"time"

	"github.com/tojem/stock-taker-api/internal/domain/entity"
)

// ItemResponse proyección HTTP de un ítem de inventario.
type ItemResponse struct {
	ID              string     `json:"id"`
	Category        string     `json:"category"`
	Name            string     `json:"name"`
	CurrentStock    int        `json:"current_stock"`
	StockTakeMethod string     `json:"stock_take_method"`
	TareWeight      string     `json:"tare_weight,omitempty"`
	UnitWeight      string     `json:"unit_weight,omitempty"`
	LastCountedAt   *time.Time `json:"last_counted_at,omitempty"`
	CountedSession  *string    `json:"last_counted_in_session_id,omitempty"`
}

// FromItem construye la proyección desde la entidad.
func FromItem(it entity.InventoryItem) ItemResponse {
	out := ItemResponse{
		ID:              it.ID,
		Category:        it.Category,
		Name:            it.Name,
		CurrentStock:    it.CurrentStock,
		StockTakeMethod: string(it.StockTakeMethod),
		LastCountedAt:   it.LastCountedAt,
		CountedSession:  it.LastCountedInSessionID,
	}
	if it.StockTakeMethod == entity.MethodWeight {
		out.TareWeight = it.TareWeight.String()
		out.UnitWeight = it.UnitWeight.String()
	}
	return out
}

// FromItems mapea un slice de entidades.
func FromItems(items []entity.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}

// SessionResponse proyección HTTP de una sesión de conteo.
type SessionResponse struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	StartedBy   string     `json:"started_by"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// FromSession construye la proyección desde la entidad.
func FromSession(s entity.StockTakeSession) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		StartedAt:   s.StartedAt,
		StartedBy:   s.StartedBy,
		Status:      string(s.Status),
		CompletedAt: s.CompletedAt,
	}
}

// ChecklistResponse particiones pendiente/completado más progreso.
type ChecklistResponse struct {
	SessionID string         `json:"session_id"`
	Remaining []ItemResponse `json:"remaining"`
	Completed []ItemResponse `json:"completed"`
	Total     int            `json:"total"`
	Progress  float64        `json:"progress"`
}

// FinishSessionRequest confirmación para cerrar la sesión. Si quedan ítems
// pendientes, AcknowledgeRemaining debe traer exactamente esa cantidad.
type FinishSessionRequest struct {
	AcknowledgeRemaining *int `json:"acknowledge_remaining,omitempty"`
}

// SelectItemRequest selección manual de un ítem del checklist.
type SelectItemRequest struct {
	ItemID string `json:"item_id"`
}

// CommitCountRequest valor crudo capturado (conteo manual o peso total en gramos).
type CommitCountRequest struct {
	Input string `json:"input"`
}

// ScanDecodeRequest código decodificado que envía el dispositivo escáner.
type ScanDecodeRequest struct {
	Code string `json:"code"`
}

// ScanDecodeResponse resultado de reconciliar un código decodificado.
type ScanDecodeResponse struct {
	Outcome string        `json:"outcome"` // verified | mismatch | selected
	Item    *ItemResponse `json:"item,omitempty"`
}

// CountingStateResponse estado actual del flujo de conteo del dispositivo.
type CountingStateResponse struct {
	State string        `json:"state"` // idle | unverified | verified
	Item  *ItemResponse `json:"item,omitempty"`
}

// CommitCountResponse resultado de un commit exitoso.
type CommitCountResponse struct {
	Item          ItemResponse `json:"item"`
	RefreshNeeded bool         `json:"refresh_needed"`
}
