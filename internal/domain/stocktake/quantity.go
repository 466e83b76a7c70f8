// Package stocktake contiene la lógica pura del conteo físico: derivación de
// cantidades (directa o por peso) y particionado del checklist. Sin dependencias
// de infraestructura para poder testearla con vectores exactos.
package stocktake

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
)

// QuantityFromWeight deriva la cantidad de unidades a partir del peso total leído
// en la báscula: round((peso - tara) / pesoUnitario).
// Guardas, cada una produce ErrValidation (nunca panic):
//   - UnitWeight <= 0 (división imposible)
//   - peso leído < tara (el contenedor pesaría menos que vacío)
func QuantityFromWeight(inputWeight, tareWeight, unitWeight decimal.Decimal) (int, error) {
	if unitWeight.LessThanOrEqual(decimal.Zero) {
		return 0, domain.ErrValidation
	}
	if inputWeight.LessThan(tareWeight) {
		return 0, domain.ErrValidation
	}
	net := inputWeight.Sub(tareWeight)
	qty := net.Div(unitWeight).Round(0)
	if qty.LessThan(decimal.Zero) {
		return 0, domain.ErrValidation
	}
	return int(qty.IntPart()), nil
}

// QuantityFromCount interpreta un conteo manual directo como entero no negativo.
func QuantityFromCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrValidation
	}
	if n < 0 {
		return 0, domain.ErrValidation
	}
	return n, nil
}

// CandidateStock calcula el candidato a nuevo stock para el ítem según su método
// de conteo. El candidato validado es siempre un entero >= 0 o ErrValidation.
func CandidateStock(item entity.InventoryItem, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ErrValidation
	}
	if item.StockTakeMethod == entity.MethodWeight {
		input, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return 0, domain.ErrValidation
		}
		return QuantityFromWeight(input, item.TareWeight, item.UnitWeight)
	}
	return QuantityFromCount(raw)
}
