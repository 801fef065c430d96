package models

import "time"

// Produccion - lote de producción mensual. El costo unitario se calcula al
// registrar el lote y queda congelado: gastos cargados después no lo cambian.
type Produccion struct {
	ID                     uint `gorm:"primaryKey"`
	ProductoID             uint `gorm:"index;not null"`
	Producto               Producto
	Cantidad               int       `gorm:"not null"`
	Mes                    int       `gorm:"not null"` // 1-12
	Anio                   int       `gorm:"not null"`
	CostoUnitarioCalculado int64     `gorm:"not null;default:0"`
	FechaRegistro          time.Time `gorm:"not null"`
}

func (Produccion) TableName() string { return "produccion" }
