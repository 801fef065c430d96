package productos

import (
	"strings"

	"github.com/voeseboin/fabrica-app/internal/finanzas"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductoResponse struct {
	ID              uint   `json:"id"`
	Nombre          string `json:"nombre"`
	StockActual     int    `json:"stock_actual"`
	PrecioMayorista int64  `json:"precio_mayorista"`
	PrecioMinorista int64  `json:"precio_minorista"`
	Activo          bool   `json:"activo"`
}

type CreateProductoRequest struct {
	Nombre          string `json:"nombre"`
	StockInicial    int    `json:"stock_inicial"`
	PrecioMayorista int64  `json:"precio_mayorista"`
	PrecioMinorista int64  `json:"precio_minorista"`
}

type UpdateProductoRequest struct {
	Nombre          *string `json:"nombre"`
	PrecioMayorista *int64  `json:"precio_mayorista"`
	PrecioMinorista *int64  `json:"precio_minorista"`
}

func toResponse(p models.Producto) ProductoResponse {
	return ProductoResponse{
		ID:              p.ID,
		Nombre:          p.Nombre,
		StockActual:     p.StockActual,
		PrecioMayorista: p.PrecioMayorista,
		PrecioMinorista: p.PrecioMinorista,
		Activo:          p.Estado == models.EstadoActivo,
	}
}

// GET /api/productos
func ListProductosHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var productos []models.Producto
		if err := db.Where("estado = ?", models.EstadoActivo).Order("nombre asc").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		res := make([]ProductoResponse, 0, len(productos))
		for _, p := range productos {
			res = append(res, toResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/productos
func CreateProductoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if body.StockInicial < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El stock inicial no puede ser negativo")
		}

		producto := models.Producto{
			Nombre:          body.Nombre,
			StockActual:     body.StockInicial,
			PrecioMayorista: body.PrecioMayorista,
			PrecioMinorista: body.PrecioMinorista,
			Estado:          models.EstadoActivo,
		}

		if err := db.Create(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}

		return c.JSON(fiber.Map{"success": true, "producto": toResponse(producto)})
	}
}

// PUT /api/productos/:id
// Solo nombre y precios; el stock lo mueven producción y ventas.
func UpdateProductoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.Producto
		if err := db.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var body UpdateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			producto.Nombre = nombre
		}
		if body.PrecioMayorista != nil {
			producto.PrecioMayorista = *body.PrecioMayorista
		}
		if body.PrecioMinorista != nil {
			producto.PrecioMinorista = *body.PrecioMinorista
		}

		if err := db.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		return c.JSON(fiber.Map{"success": true, "producto": toResponse(producto)})
	}
}

// DELETE /api/productos/:id
// Baja lógica. Cualquier producción o venta histórica (aunque esté toda
// consumida) bloquea la baja; el historial nunca se borra.
func DeleteProductoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.Producto
		if err := db.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		var producciones int64
		if err := db.Model(&models.Produccion{}).Where("producto_id = ?", producto.ID).Count(&producciones).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo verificar la producción asociada")
		}
		var ventas int64
		if err := db.Model(&models.Venta{}).Where("producto_id = ?", producto.ID).Count(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron verificar las ventas asociadas")
		}

		if producciones > 0 || ventas > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No se puede eliminar: tiene producciones o ventas asociadas")
		}

		producto.Estado = models.EstadoArchivado
		if err := db.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el producto")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// GET /api/productos/:id/producciones-disponibles
func ProduccionesDisponiblesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de producto inválido")
		}

		var producto models.Producto
		if err := db.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		disponibles, err := finanzas.ProduccionesConStock(db, producto.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron calcular las producciones disponibles")
		}

		return c.JSON(disponibles)
	}
}
