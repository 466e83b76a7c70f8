package stocktake

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tojem/stock-taker-api/internal/domain/entity"
)

// collator ordena nombres de ítems con reglas de locale, no por bytes.
var collator = collate.New(language.English, collate.IgnoreCase)

// Checklist partición del inventario respecto de la sesión de conteo actual.
// Invariante: len(Remaining) + len(Completed) == cantidad de ítems filtrados.
type Checklist struct {
	Remaining []entity.InventoryItem // marcador != sesión actual
	Completed []entity.InventoryItem // marcador == sesión actual
	Total     int                    // total de ítems sin filtrar
	Progress  float64                // completados / total * 100; 0 si no hay ítems
}

// SortByName ordena los ítems por nombre (collation, estable) in place.
func SortByName(items []entity.InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return collator.CompareString(items[i].Name, items[j].Name) < 0
	})
}

// Build ordena por nombre, filtra por búsqueda (substring del nombre, sin distinguir
// mayúsculas) y particiona en pendientes/completados según el marcador de sesión.
// El orden del sort se preserva dentro de cada partición.
func Build(items []entity.InventoryItem, sessionID, search string) Checklist {
	sorted := make([]entity.InventoryItem, len(items))
	copy(sorted, items)
	SortByName(sorted)

	filtered := sorted
	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		filtered = filtered[:0:0]
		for _, it := range sorted {
			if strings.Contains(strings.ToLower(it.Name), term) {
				filtered = append(filtered, it)
			}
		}
	}

	cl := Checklist{
		Remaining: []entity.InventoryItem{},
		Completed: []entity.InventoryItem{},
		Total:     len(items),
	}
	for _, it := range filtered {
		if it.CountedIn(sessionID) {
			cl.Completed = append(cl.Completed, it)
		} else {
			cl.Remaining = append(cl.Remaining, it)
		}
	}
	// Guardia de división por cero: sin ítems el progreso es 0%, no un error.
	if cl.Total > 0 {
		cl.Progress = float64(len(cl.Completed)) / float64(cl.Total) * 100
	}
	return cl
}
