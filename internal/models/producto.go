package models

// EstadoProducto - estado del producto
type EstadoProducto string

const (
	EstadoActivo    EstadoProducto = "activo"
	EstadoArchivado EstadoProducto = "archivado" // baja lógica, la fila nunca se borra
)

// Producto - artículo fabricado. StockActual se mantiene siempre igual a la
// suma de (cantidad producida - cantidad vendida) de todas sus producciones;
// solo lo mutan las operaciones de producción y venta, nunca el cliente.
type Producto struct {
	ID              uint           `gorm:"primaryKey"`
	Nombre          string         `gorm:"size:100;not null"`
	StockActual     int            `gorm:"not null;default:0"`
	PrecioMayorista int64          `gorm:"not null;default:0"` // en guaraníes, sin decimales
	PrecioMinorista int64          `gorm:"not null;default:0"`
	Estado          EstadoProducto `gorm:"type:varchar(20);not null;default:'activo'"`
}

func (Producto) TableName() string { return "productos" }
