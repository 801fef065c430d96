package database

import (
	"log"

	"github.com/voeseboin/fabrica-app/internal/config"
	"github.com/voeseboin/fabrica-app/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init abre la conexión y deja el esquema al día.
func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos lista. Migración completada.")
	return db
}

// Migrate crea las tablas que falten. Es idempotente, también la usa
// GET /api/init.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Producto{},
		&models.Produccion{},
		&models.Venta{},
		&models.Gasto{},
	)
}
