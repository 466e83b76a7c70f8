package stocktake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/domain/stocktake"
)

const sesionActual = "ses-001"

func marcado(sessionID string) *string { return &sessionID }

func itemsDePrueba() []entity.InventoryItem {
	return []entity.InventoryItem{
		{ID: "C1", Category: entity.CategoryComponents, Name: "tornillo M6"},
		{ID: "C2", Category: entity.CategoryComponents, Name: "Arandela", LastCountedInSessionID: marcado(sesionActual)},
		{ID: "R1", Category: entity.CategoryRawMaterials, Name: "resina epoxi", LastCountedInSessionID: marcado("ses-vieja")},
		{ID: "W1", Category: entity.CategoryWorkshopSupplies, Name: "guantes"},
		{ID: "W2", Category: entity.CategoryWorkshopSupplies, Name: "Cinta adhesiva", LastCountedInSessionID: marcado(sesionActual)},
	}
}

// Propiedad central: tras particionar, pendientes + completados == filtrados,
// para cualquier término de búsqueda.
func TestBuild_ParticionSumaFiltrados(t *testing.T) {
	for _, search := range []string{"", "a", "torni", "GUANTES", "zzz"} {
		cl := stocktake.Build(itemsDePrueba(), sesionActual, search)

		esperados := 0
		for _, it := range itemsDePrueba() {
			nombre := it.Name
			if search == "" || containsFold(nombre, search) {
				esperados++
			}
		}
		assert.Equal(t, esperados, len(cl.Remaining)+len(cl.Completed),
			"con búsqueda %q la partición debe cubrir exactamente los filtrados", search)
	}
}

func TestBuild_MarcadorDeSesionDecideParticion(t *testing.T) {
	cl := stocktake.Build(itemsDePrueba(), sesionActual, "")

	require.Len(t, cl.Completed, 2, "solo los marcados con la sesión actual cuentan como completados")
	require.Len(t, cl.Remaining, 3, "marcador nil o de sesión anterior = pendiente")

	for _, it := range cl.Completed {
		assert.True(t, it.CountedIn(sesionActual))
	}
	for _, it := range cl.Remaining {
		assert.False(t, it.CountedIn(sesionActual))
	}
}

func TestBuild_OrdenPorNombreIgnorandoMayusculas(t *testing.T) {
	cl := stocktake.Build(itemsDePrueba(), sesionActual, "")

	var nombres []string
	for _, it := range cl.Remaining {
		nombres = append(nombres, it.Name)
	}
	// guantes < resina epoxi < tornillo M6 con collation (no por bytes ASCII).
	assert.Equal(t, []string{"guantes", "resina epoxi", "tornillo M6"}, nombres)
}

func TestBuild_BusquedaNoDistingueMayusculas(t *testing.T) {
	cl := stocktake.Build(itemsDePrueba(), sesionActual, "CINTA")
	require.Len(t, cl.Completed, 1)
	assert.Equal(t, "W2", cl.Completed[0].ID)
	assert.Empty(t, cl.Remaining)
}

func TestBuild_ProgresoSobreTotalSinFiltrar(t *testing.T) {
	// La búsqueda reduce las particiones pero el denominador sigue siendo el total.
	cl := stocktake.Build(itemsDePrueba(), sesionActual, "cinta")
	assert.Equal(t, 5, cl.Total)
	assert.InDelta(t, 20.0, cl.Progress, 0.001, "1 completado visible de 5 totales = 20%")
}

func TestBuild_SinItems_ProgresoCeroSinError(t *testing.T) {
	cl := stocktake.Build(nil, sesionActual, "")
	assert.Zero(t, cl.Progress, "sin ítems el progreso es 0, nunca división por cero")
	assert.Empty(t, cl.Remaining)
	assert.Empty(t, cl.Completed)
}

func TestBuild_NoMutaElSliceDeEntrada(t *testing.T) {
	items := itemsDePrueba()
	original := items[0].ID
	_ = stocktake.Build(items, sesionActual, "")
	assert.Equal(t, original, items[0].ID, "Build debe ordenar una copia, no la entrada")
}

// containsFold réplica mínima del filtro del checklist para calcular esperados.
func containsFold(name, term string) bool {
	cl := stocktake.Build([]entity.InventoryItem{{Name: name}}, "x", term)
	return len(cl.Remaining)+len(cl.Completed) == 1
}
