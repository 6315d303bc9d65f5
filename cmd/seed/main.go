// seed crea el usuario administrador inicial y unos productos de ejemplo.
//
// Uso: go run ./cmd/seed
// Credenciales vía env: SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD, SEED_ADMIN_NAME.
// Idempotente: si el admin ya existe no lo duplica.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/GaloDurante/stockApp/internal/domain/entity"
	"github.com/GaloDurante/stockApp/internal/domain/repository"
	"github.com/GaloDurante/stockApp/internal/infrastructure/postgres"
	"github.com/GaloDurante/stockApp/pkg/config"
	"github.com/GaloDurante/stockApp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	email := envOr("SEED_ADMIN_EMAIL", "admin@stockapp.local")
	password := envOr("SEED_ADMIN_PASSWORD", "cambiame123")
	name := envOr("SEED_ADMIN_NAME", "Administrador")

	existing, err := userRepo.FindByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("admin ya existe, no se recrea")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear contraseña")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", email).Msg("admin creado")
	}

	// Catálogo de ejemplo, solo si está vacío
	_, total, err := productRepo.List(listAllFilter())
	if err != nil {
		log.Fatal().Err(err).Msg("listar productos")
	}
	if total > 0 {
		log.Info().Int("total", total).Msg("catálogo con datos, no se siembran productos")
		return
	}
	for _, p := range demoProducts() {
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("crear producto")
		}
		log.Info().Str("name", p.Name).Msg("producto creado")
	}
}

// listAllFilter: alcanza con una página mínima, solo interesa el total.
func listAllFilter() repository.ProductFilter {
	return repository.ProductFilter{Limit: 1}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func demoProducts() []*entity.Product {
	now := time.Now()
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	boxPrice := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	return []*entity.Product{
		{
			ID: uuid.New().String(), Name: "Malbec Reserva 750ml", Category: entity.CategoryVinos,
			Stock: 24, PurchasePrice: price("3500"), SalePrice: price("6000"),
			SalePriceBox: boxPrice("33000"), UnitsPerBox: 6,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Cerveza Rubia 473ml", Category: entity.CategoryCervezas,
			Stock: 120, PurchasePrice: price("700"), SalePrice: price("1300"),
			SalePriceBox: boxPrice("27000"), UnitsPerBox: 24,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Gin Premium 700ml", Category: entity.CategoryLicores,
			Stock: 10, PurchasePrice: price("9000"), SalePrice: price("15000"),
			UnitsPerBox: 1,
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Name: "Gaseosa Cola 2.25L", Category: entity.CategoryGaseosas,
			Stock: 48, PurchasePrice: price("1100"), SalePrice: price("2000"),
			SalePriceBox: boxPrice("14000"), UnitsPerBox: 8,
			CreatedAt: now, UpdatedAt: now,
		},
	}
}
