package models

import "time"

// Venta - venta contra un lote de producción concreto. PrecioAplicado es una
// copia del precio mayorista/minorista vigente al vender, no una referencia.
// El stock disponible del lote nunca se guarda: se recalcula en vivo.
type Venta struct {
	ID             uint `gorm:"primaryKey"`
	ProductoID     uint `gorm:"index;not null"`
	Producto       Producto
	ProduccionID   uint `gorm:"index;not null"`
	Produccion     Produccion
	Cantidad       int       `gorm:"not null"`
	PrecioAplicado int64     `gorm:"not null"`
	Descuento      int64     `gorm:"not null;default:0"` // monto fijo, no por unidad
	Fecha          time.Time `gorm:"index;not null"`
	MesVenta       int       `gorm:"not null"`
	AnioVenta      int       `gorm:"not null"`
	GananciaReal   int64     `gorm:"not null;default:0"`
}

func (Venta) TableName() string { return "ventas" }
