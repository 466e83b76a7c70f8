package stocktake

import (
	"context"
	"fmt"

	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
	domstock "github.com/tojem/stock-taker-api/internal/domain/stocktake"
)

// ChecklistUseCase deriva las particiones pendiente/completado del inventario
// completo respecto de la sesión activa y gobierna el cierre confirmado.
type ChecklistUseCase struct {
	itemRepo  repository.ItemRepository
	sessionUC *SessionUseCase
}

// NewChecklistUseCase construye el caso de uso.
func NewChecklistUseCase(itemRepo repository.ItemRepository, sessionUC *SessionUseCase) *ChecklistUseCase {
	return &ChecklistUseCase{itemRepo: itemRepo, sessionUC: sessionUC}
}

// Build trae el inventario fresco del store (se llama al entrar al checklist y en
// cada refresh tras un conteo) y lo particiona para la sesión dada.
func (uc *ChecklistUseCase) Build(ctx context.Context, sessionID, search string) (domstock.Checklist, error) {
	items, err := uc.itemRepo.ListAll()
	if err != nil {
		return domstock.Checklist{}, err
	}
	return domstock.Build(items, sessionID, search), nil
}

// Finish cierra la sesión con confirmación explícita. Si quedan ítems pendientes,
// el caller debe reconocer exactamente cuántos (acknowledgeRemaining); un
// reconocimiento ausente o desactualizado es ErrConflict y no cambia nada.
// Sin pendientes basta la confirmación simple que ya supone la llamada.
func (uc *ChecklistUseCase) Finish(ctx context.Context, sessionID string, acknowledgeRemaining *int) error {
	cl, err := uc.Build(ctx, sessionID, "")
	if err != nil {
		return err
	}
	if remaining := len(cl.Remaining); remaining > 0 {
		if acknowledgeRemaining == nil || *acknowledgeRemaining != remaining {
			return fmt.Errorf("%w: quedan %d ítems sin contar", domain.ErrConflict, remaining)
		}
	}
	return uc.sessionUC.Finish(ctx, sessionID)
}
