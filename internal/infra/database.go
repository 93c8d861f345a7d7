package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (CHECK constraints guarding the tank ledger and the bottle
// credit counters).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.TasaCambio{},
		&model.Producto{},
		&model.MetodoPago{},
		&model.Venta{},
		&model.ItemVenta{},
		&model.PagoVenta{},
		&model.Cisterna{},
		&model.Delivery{},
		&model.Promocion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL the model tags cannot express. The
// CHECK constraints are the database-side backstop for the guarded relative
// UPDATEs: even a buggy writer cannot push the tank negative or redeem more
// bottles than were paid.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"cisternas litros_disponibles >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_cisternas_litros_no_negativos') THEN
    ALTER TABLE cisternas
      ADD CONSTRAINT chk_cisternas_litros_no_negativos CHECK (litros_disponibles >= 0);
  END IF;
END $$`},
		{"promociones retiradas <= pagadas", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_promociones_retiradas') THEN
    ALTER TABLE promociones
      ADD CONSTRAINT chk_promociones_retiradas
      CHECK (botellas_retiradas >= 0 AND botellas_retiradas <= botellas_pagadas);
  END IF;
END $$`},
		{"ventas totales no negativos", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_ventas_totales') THEN
    ALTER TABLE ventas
      ADD CONSTRAINT chk_ventas_totales CHECK (total_divisa >= 0 AND total_bs >= 0);
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
