package ventas

import (
	"fmt"
	"time"

	"github.com/voeseboin/fabrica-app/internal/database"
	"github.com/voeseboin/fabrica-app/internal/finanzas"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateVentaRequest struct {
	ProductoID   uint   `json:"producto_id"`
	ProduccionID uint   `json:"produccion_id"`
	Cantidad     int    `json:"cantidad"`
	TipoPrecio   string `json:"tipo_precio"` // "mayorista" o "minorista"
	Descuento    int64  `json:"descuento"`
}

type VentaResponse struct {
	ID             uint   `json:"id"`
	ProductoID     uint   `json:"producto_id"`
	ProductoNombre string `json:"producto_nombre"`
	ProduccionID   uint   `json:"produccion_id"`
	Cantidad       int    `json:"cantidad"`
	PrecioAplicado int64  `json:"precio_aplicado"`
	Descuento      int64  `json:"descuento"`
	Fecha          string `json:"fecha"`
	MesVenta       int    `json:"mes_venta"`
	AnioVenta      int    `json:"anio_venta"`
	GananciaReal   int64  `json:"ganancia_real"`
}

func toResponse(v models.Venta) VentaResponse {
	return VentaResponse{
		ID:             v.ID,
		ProductoID:     v.ProductoID,
		ProductoNombre: v.Producto.Nombre,
		ProduccionID:   v.ProduccionID,
		Cantidad:       v.Cantidad,
		PrecioAplicado: v.PrecioAplicado,
		Descuento:      v.Descuento,
		Fecha:          v.Fecha.Format(time.RFC3339),
		MesVenta:       v.MesVenta,
		AnioVenta:      v.AnioVenta,
		GananciaReal:   v.GananciaReal,
	}
}

// GET /api/ventas
func ListVentasHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ventas []models.Venta
		if err := db.Preload("Producto").Order("fecha desc").Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas")
		}

		res := make([]VentaResponse, 0, len(ventas))
		for _, v := range ventas {
			res = append(res, toResponse(v))
		}
		return c.JSON(res)
	}
}

// POST /api/ventas
// Valida contra el lote y contra el producto antes de escribir. El chequeo
// de producto es redundante si los contadores están en sincronía: se hace
// igual para que una discrepancia salte acá y no quede tapada.
func CreateVentaHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Cantidad <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
		}
		if body.TipoPrecio != "mayorista" && body.TipoPrecio != "minorista" {
			return fiber.NewError(fiber.StatusBadRequest, "tipo_precio debe ser 'mayorista' o 'minorista'")
		}
		if body.Descuento < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El descuento no puede ser negativo")
		}

		unlock := database.LockProducto(body.ProductoID)
		defer unlock()

		var venta models.Venta
		err := db.Transaction(func(tx *gorm.DB) error {
			var producto models.Producto
			if err := tx.First(&producto, "id = ?", body.ProductoID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}

			var produccion models.Produccion
			if err := tx.First(&produccion, "id = ?", body.ProduccionID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producción no encontrada")
			}
			if produccion.ProductoID != producto.ID {
				return fiber.NewError(fiber.StatusBadRequest, "La producción no pertenece al producto indicado")
			}

			disponible, err := finanzas.StockDisponible(tx, produccion.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el stock disponible")
			}
			if body.Cantidad > disponible {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Stock insuficiente. Solo hay %d unidades disponibles", disponible))
			}

			if body.Cantidad > producto.StockActual {
				return fiber.NewError(fiber.StatusBadRequest, "Stock insuficiente en el producto")
			}

			precioAplicado := producto.PrecioMinorista
			if body.TipoPrecio == "mayorista" {
				precioAplicado = producto.PrecioMayorista
			}

			costoTotal := produccion.CostoUnitarioCalculado * int64(body.Cantidad)
			ingresoTotal := precioAplicado*int64(body.Cantidad) - body.Descuento
			gananciaReal := ingresoTotal - costoTotal

			ahora := time.Now()
			venta = models.Venta{
				ProductoID:     producto.ID,
				ProduccionID:   produccion.ID,
				Cantidad:       body.Cantidad,
				PrecioAplicado: precioAplicado,
				Descuento:      body.Descuento,
				Fecha:          ahora,
				MesVenta:       int(ahora.Month()),
				AnioVenta:      ahora.Year(),
				GananciaReal:   gananciaReal,
			}
			if err := tx.Create(&venta).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la venta")
			}

			producto.StockActual -= body.Cantidad
			if err := tx.Save(&producto).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el stock")
			}

			venta.Producto = producto
			return nil
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":       true,
			"venta":         toResponse(venta),
			"ganancia_real": venta.GananciaReal,
		})
	}
}

// DELETE /api/ventas/:id
// Devuelve la cantidad al stock del producto. El disponible del lote no se
// toca porque nunca se guarda: se recalcula solo.
func DeleteVentaHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var venta models.Venta
		if err := db.First(&venta, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		unlock := database.LockProducto(venta.ProductoID)
		defer unlock()

		err := db.Transaction(func(tx *gorm.DB) error {
			// relectura bajo el lock: otro borrado pudo ganarle a la prelectura
			if err := tx.First(&venta, "id = ?", venta.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
			}

			var producto models.Producto
			if err := tx.First(&producto, "id = ?", venta.ProductoID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}

			producto.StockActual += venta.Cantidad
			if err := tx.Save(&producto).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el stock")
			}

			if err := tx.Delete(&venta).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la venta")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
