package stocktake_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
)

func buildChecklistUC(t *testing.T) (*stocktake.ChecklistUseCase, *fakeSessionRepo, *fakeItemRepo, string) {
	t.Helper()
	sessions := newFakeSessionRepo()
	s, err := sessions.Create("scanner@taller.local")
	require.NoError(t, err)

	items := &fakeItemRepo{items: []entity.InventoryItem{
		{ID: "C1", Category: entity.CategoryComponents, Name: "Tornillo", StockTakeMethod: entity.MethodCount},
		itemConMarcador("C2", s.ID),
		{ID: "W1", Category: entity.CategoryWorkshopSupplies, Name: "Guantes", StockTakeMethod: entity.MethodCount},
	}}
	sessionUC := buildSessionUC(sessions, items)
	return stocktake.NewChecklistUseCase(items, sessionUC), sessions, items, s.ID
}

func TestChecklistBuild_ParticionaContraLaSesionActiva(t *testing.T) {
	uc, _, _, sessionID := buildChecklistUC(t)

	cl, err := uc.Build(context.Background(), sessionID, "")
	require.NoError(t, err)
	assert.Len(t, cl.Completed, 1)
	assert.Len(t, cl.Remaining, 2)
	assert.Equal(t, 3, cl.Total)
}

func TestChecklistFinish_ConPendientesSinReconocimiento_Conflicto(t *testing.T) {
	uc, sessions, _, sessionID := buildChecklistUC(t)

	err := uc.Finish(context.Background(), sessionID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Rechazar la confirmación no cambia nada.
	s, _ := sessions.GetByID(sessionID)
	assert.Equal(t, entity.SessionInProgress, s.Status)
}

func TestChecklistFinish_ReconocimientoDesactualizado_Conflicto(t *testing.T) {
	uc, _, _, sessionID := buildChecklistUC(t)

	ack := 5 // el checklist real tiene 2 pendientes
	err := uc.Finish(context.Background(), sessionID, &ack)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestChecklistFinish_ReconocimientoExacto_Termina(t *testing.T) {
	uc, sessions, _, sessionID := buildChecklistUC(t)

	ack := 2
	require.NoError(t, uc.Finish(context.Background(), sessionID, &ack))

	s, _ := sessions.GetByID(sessionID)
	assert.Equal(t, entity.SessionCompleted, s.Status)
}

func TestChecklistFinish_SinPendientes_TerminaSinReconocimiento(t *testing.T) {
	sessions := newFakeSessionRepo()
	s, _ := sessions.Create("scanner@taller.local")
	items := &fakeItemRepo{items: []entity.InventoryItem{itemConMarcador("C1", s.ID)}}
	uc := stocktake.NewChecklistUseCase(items, buildSessionUC(sessions, items))

	require.NoError(t, uc.Finish(context.Background(), s.ID, nil))
	after, _ := sessions.GetByID(s.ID)
	assert.Equal(t, entity.SessionCompleted, after.Status)
}
