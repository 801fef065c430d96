package produccion

import (
	"time"

	"github.com/voeseboin/fabrica-app/internal/database"
	"github.com/voeseboin/fabrica-app/internal/finanzas"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProduccionRequest struct {
	ProductoID uint `json:"producto_id"`
	Cantidad   int  `json:"cantidad"`
	Mes        int  `json:"mes"`
	Anio       int  `json:"anio"`
}

type ProduccionResponse struct {
	ID                     uint   `json:"id"`
	ProductoID             uint   `json:"producto_id"`
	ProductoNombre         string `json:"producto_nombre"`
	Cantidad               int    `json:"cantidad"`
	Mes                    int    `json:"mes"`
	Anio                   int    `json:"anio"`
	CostoUnitarioCalculado int64  `json:"costo_unitario_calculado"`
	FechaRegistro          string `json:"fecha_registro"`
}

func toResponse(p models.Produccion) ProduccionResponse {
	return ProduccionResponse{
		ID:                     p.ID,
		ProductoID:             p.ProductoID,
		ProductoNombre:         p.Producto.Nombre,
		Cantidad:               p.Cantidad,
		Mes:                    p.Mes,
		Anio:                   p.Anio,
		CostoUnitarioCalculado: p.CostoUnitarioCalculado,
		FechaRegistro:          p.FechaRegistro.Format(time.RFC3339),
	}
}

// GET /api/produccion
func ListProduccionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var producciones []models.Produccion
		if err := db.Preload("Producto").Order("anio desc, mes desc").Find(&producciones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar la producción")
		}

		res := make([]ProduccionResponse, 0, len(producciones))
		for _, p := range producciones {
			res = append(res, toResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/produccion
// Registra el lote con el costo unitario del mes congelado y suma la
// cantidad al stock del producto. Lote y stock se escriben en la misma
// transacción: o persisten los dos o ninguno.
func CreateProduccionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProduccionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Cantidad <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "La cantidad debe ser mayor a cero")
		}
		if body.Mes < 1 || body.Mes > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "El mes debe estar entre 1 y 12")
		}
		if body.Anio < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "Año inválido")
		}

		unlock := database.LockProducto(body.ProductoID)
		defer unlock()

		var produccion models.Produccion
		err := db.Transaction(func(tx *gorm.DB) error {
			var producto models.Producto
			if err := tx.First(&producto, "id = ?", body.ProductoID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}

			produccion = models.Produccion{
				ProductoID:    producto.ID,
				Cantidad:      body.Cantidad,
				Mes:           body.Mes,
				Anio:          body.Anio,
				FechaRegistro: time.Now(),
			}
			if err := tx.Create(&produccion).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la producción")
			}

			// el lote nuevo entra al denominador del promedio del mes
			costoUnitario, err := finanzas.CostoUnitarioMes(tx, body.Mes, body.Anio)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el costo unitario")
			}
			produccion.CostoUnitarioCalculado = costoUnitario
			if err := tx.Model(&models.Produccion{}).Where("id = ?", produccion.ID).
				Update("costo_unitario_calculado", costoUnitario).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el costo unitario")
			}

			producto.StockActual += body.Cantidad
			if err := tx.Save(&producto).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el stock")
			}

			produccion.Producto = producto
			return nil
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"produccion":     toResponse(produccion),
			"costo_unitario": produccion.CostoUnitarioCalculado,
		})
	}
}

// DELETE /api/produccion/:id
// Solo se puede borrar un lote sin ventas; el borrado descuenta del stock
// la cantidad completa del lote.
func DeleteProduccionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var produccion models.Produccion
		if err := db.First(&produccion, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producción no encontrada")
		}

		unlock := database.LockProducto(produccion.ProductoID)
		defer unlock()

		err := db.Transaction(func(tx *gorm.DB) error {
			// relectura bajo el lock: otro borrado pudo ganarle a la prelectura
			if err := tx.First(&produccion, "id = ?", produccion.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producción no encontrada")
			}

			var ventas int64
			if err := tx.Model(&models.Venta{}).Where("produccion_id = ?", produccion.ID).Count(&ventas).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron verificar las ventas asociadas")
			}
			if ventas > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "No se puede eliminar: tiene ventas asociadas")
			}

			var producto models.Producto
			if err := tx.First(&producto, "id = ?", produccion.ProductoID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
			}

			producto.StockActual -= produccion.Cantidad
			if err := tx.Save(&producto).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el stock")
			}

			if err := tx.Delete(&produccion).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la producción")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
