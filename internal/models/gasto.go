package models

import "time"

type GastoTipo string

const (
	GastoFabrica  GastoTipo = "Fabrica"  // costo de producción, entra al costo unitario
	GastoPersonal GastoTipo = "Personal" // retiro personal, solo afecta el balance
)

type Gasto struct {
	ID        uint      `gorm:"primaryKey"`
	Concepto  string    `gorm:"size:200;not null"`
	Monto     int64     `gorm:"not null"`
	Fecha     time.Time `gorm:"index;not null"`
	MesGasto  int       `gorm:"not null"`
	AnioGasto int       `gorm:"not null"`
	Tipo      GastoTipo `gorm:"type:varchar(20);not null"`
}

func (Gasto) TableName() string { return "gastos" }
