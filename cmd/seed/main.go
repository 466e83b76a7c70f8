// seed puebla la base con un operario inicial y el catálogo de ejemplo del
// taller (componentes, materias primas e insumos).
//
// Uso: go run ./cmd/seed
// Credenciales vía env: SEED_OPERATOR_EMAIL, SEED_OPERATOR_PASSWORD, SEED_OPERATOR_NAME.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/infrastructure/postgres"
	"github.com/tojem/stock-taker-api/pkg/config"
)

type seedItem struct {
	id       string
	category string
	name     string
	stock    int
	method   entity.StockTakeMethod
	tare     string
	unit     string
}

var catalog = []seedItem{
	{"CMP-001", entity.CategoryComponents, "Tornillo M4x12", 480, entity.MethodWeight, "50", "1.1"},
	{"CMP-002", entity.CategoryComponents, "Tuerca M4", 600, entity.MethodWeight, "45", "0.8"},
	{"CMP-003", entity.CategoryComponents, "Rodamiento 608ZZ", 32, entity.MethodCount, "", ""},
	{"RAW-001", entity.CategoryRawMaterials, "Varilla acero 6mm x 1m", 25, entity.MethodCount, "", ""},
	{"RAW-002", entity.CategoryRawMaterials, "Plancha aluminio 2mm", 12, entity.MethodCount, "", ""},
	{"SUP-001", entity.CategoryWorkshopSupplies, "Guantes nitrilo (par)", 40, entity.MethodCount, "", ""},
	{"SUP-002", entity.CategoryWorkshopSupplies, "Disco de corte 115mm", 58, entity.MethodCount, "", ""},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	email := envOr("SEED_OPERATOR_EMAIL", "operario@tojem.local")
	password := envOr("SEED_OPERATOR_PASSWORD", "cambiar-al-primer-uso")
	name := envOr("SEED_OPERATOR_NAME", "Operario Taller")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
		os.Exit(1)
	}

	operatorRepo := postgres.NewOperatorRepository(pool)
	existing, err := operatorRepo.GetByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "consultar operario: %v\n", err)
		os.Exit(1)
	}
	if existing == nil {
		op := &entity.Operator{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}
		if err := operatorRepo.Create(op); err != nil {
			fmt.Fprintf(os.Stderr, "crear operario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("operario creado: %s (%s)\n", name, email)
	} else {
		fmt.Printf("operario ya existe: %s\n", email)
	}

	inserted := 0
	for _, it := range catalog {
		tare, unit := decimal.Zero, decimal.Zero
		if it.method == entity.MethodWeight {
			tare = decimal.RequireFromString(it.tare)
			unit = decimal.RequireFromString(it.unit)
		}
		tag, err := pool.Exec(ctx, `
			INSERT INTO inventory_items
				(id, category, name, current_stock, stock_take_method, tare_weight, unit_weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (category, id) DO NOTHING`,
			it.id, it.category, it.name, it.stock, it.method, tare, unit,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar ítem %s: %v\n", it.id, err)
			os.Exit(1)
		}
		inserted += int(tag.RowsAffected())
	}
	fmt.Printf("catálogo: %d ítems nuevos de %d\n", inserted, len(catalog))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
