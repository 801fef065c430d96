package gastos

import (
	"strings"
	"time"

	"github.com/voeseboin/fabrica-app/internal/finanzas"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateGastoRequest struct {
	Concepto string `json:"concepto"`
	Monto    int64  `json:"monto"`
	Tipo     string `json:"tipo"` // "Fabrica" o "Personal"
	Mes      int    `json:"mes"`
	Anio     int    `json:"anio"`
}

type GastoResponse struct {
	ID        uint   `json:"id"`
	Concepto  string `json:"concepto"`
	Monto     int64  `json:"monto"`
	Fecha     string `json:"fecha"`
	MesGasto  int    `json:"mes_gasto"`
	AnioGasto int    `json:"anio_gasto"`
	Tipo      string `json:"tipo"`
}

func toResponse(g models.Gasto) GastoResponse {
	return GastoResponse{
		ID:        g.ID,
		Concepto:  g.Concepto,
		Monto:     g.Monto,
		Fecha:     g.Fecha.Format(time.RFC3339),
		MesGasto:  g.MesGasto,
		AnioGasto: g.AnioGasto,
		Tipo:      string(g.Tipo),
	}
}

// GET /api/gastos
func ListGastosHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var gastos []models.Gasto
		if err := db.Order("fecha desc").Find(&gastos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los gastos")
		}

		res := make([]GastoResponse, 0, len(gastos))
		for _, g := range gastos {
			res = append(res, toResponse(g))
		}
		return c.JSON(res)
	}
}

// POST /api/gastos
// El tipo separa el costo de producción (entra al costo unitario del mes)
// de los retiros personales (solo afectan el balance). Los gastos cargados
// después de registrar un lote no cambian costos ya congelados.
func CreateGastoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGastoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Concepto = strings.TrimSpace(body.Concepto)
		if body.Concepto == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El concepto es obligatorio")
		}
		if body.Monto <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor a cero")
		}
		tipo := models.GastoTipo(body.Tipo)
		if tipo != models.GastoFabrica && tipo != models.GastoPersonal {
			return fiber.NewError(fiber.StatusBadRequest, "El tipo debe ser 'Fabrica' o 'Personal'")
		}
		if body.Mes < 1 || body.Mes > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "El mes debe estar entre 1 y 12")
		}
		if body.Anio < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "Año inválido")
		}

		gasto := models.Gasto{
			Concepto:  body.Concepto,
			Monto:     body.Monto,
			Fecha:     time.Now(),
			MesGasto:  body.Mes,
			AnioGasto: body.Anio,
			Tipo:      tipo,
		}

		if err := db.Create(&gasto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el gasto")
		}

		return c.JSON(fiber.Map{"success": true, "gasto": toResponse(gasto)})
	}
}

// DELETE /api/gastos/:id
func DeleteGastoHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var gasto models.Gasto
		if err := db.First(&gasto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gasto no encontrado")
		}

		if err := db.Delete(&gasto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el gasto")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// GET /api/gastos/totales
func TotalesGastosHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fabrica, personal, err := finanzas.TotalesGastos(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron calcular los totales")
		}

		return c.JSON(fiber.Map{
			"fabrica":  fabrica,
			"personal": personal,
			"total":    fabrica + personal,
		})
	}
}
