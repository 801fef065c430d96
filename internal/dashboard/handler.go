package dashboard

import (
	"time"

	"github.com/voeseboin/fabrica-app/internal/finanzas"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Umbral de "bajo stock" de la pantalla principal.
const stockBajo = 10

type productoItem struct {
	ID              uint   `json:"id"`
	Nombre          string `json:"nombre"`
	StockActual     int    `json:"stock_actual"`
	PrecioMayorista int64  `json:"precio_mayorista"`
	PrecioMinorista int64  `json:"precio_minorista"`
	Activo          bool   `json:"activo"`
}

type ventaItem struct {
	ID             uint   `json:"id"`
	ProductoID     uint   `json:"producto_id"`
	ProductoNombre string `json:"producto_nombre"`
	Cantidad       int    `json:"cantidad"`
	PrecioAplicado int64  `json:"precio_aplicado"`
	Descuento      int64  `json:"descuento"`
	Fecha          string `json:"fecha"`
	GananciaReal   int64  `json:"ganancia_real"`
}

type gastoItem struct {
	ID       uint   `json:"id"`
	Concepto string `json:"concepto"`
	Monto    int64  `json:"monto"`
	Fecha    string `json:"fecha"`
	Tipo     string `json:"tipo"`
}

// GET /api/dashboard
func DashboardHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := finanzas.CalcularDashboardStats(db, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron calcular las estadísticas")
		}

		var bajoStock []models.Producto
		if err := db.Where("stock_actual < ? AND estado = ?", stockBajo, models.EstadoActivo).Find(&bajoStock).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos con bajo stock")
		}

		var ultimasVentas []models.Venta
		if err := db.Preload("Producto").Order("fecha desc").Limit(5).Find(&ultimasVentas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las últimas ventas")
		}

		var ultimosGastos []models.Gasto
		if err := db.Order("fecha desc").Limit(5).Find(&ultimosGastos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los últimos gastos")
		}

		productos := make([]productoItem, 0, len(bajoStock))
		for _, p := range bajoStock {
			productos = append(productos, productoItem{
				ID:              p.ID,
				Nombre:          p.Nombre,
				StockActual:     p.StockActual,
				PrecioMayorista: p.PrecioMayorista,
				PrecioMinorista: p.PrecioMinorista,
				Activo:          p.Estado == models.EstadoActivo,
			})
		}

		ventas := make([]ventaItem, 0, len(ultimasVentas))
		for _, v := range ultimasVentas {
			ventas = append(ventas, ventaItem{
				ID:             v.ID,
				ProductoID:     v.ProductoID,
				ProductoNombre: v.Producto.Nombre,
				Cantidad:       v.Cantidad,
				PrecioAplicado: v.PrecioAplicado,
				Descuento:      v.Descuento,
				Fecha:          v.Fecha.Format(time.RFC3339),
				GananciaReal:   v.GananciaReal,
			})
		}

		gastos := make([]gastoItem, 0, len(ultimosGastos))
		for _, g := range ultimosGastos {
			gastos = append(gastos, gastoItem{
				ID:       g.ID,
				Concepto: g.Concepto,
				Monto:    g.Monto,
				Fecha:    g.Fecha.Format(time.RFC3339),
				Tipo:     string(g.Tipo),
			})
		}

		return c.JSON(fiber.Map{
			"stats":                stats,
			"productos_bajo_stock": productos,
			"ultimas_ventas":       ventas,
			"ultimos_gastos":       gastos,
		})
	}
}
