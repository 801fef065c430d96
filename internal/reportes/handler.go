package reportes

import (
	"fmt"
	"strings"
	"time"

	"github.com/voeseboin/fabrica-app/internal/finanzas"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ventaItem struct {
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

type gastoItem struct {
	ID        uint   `json:"id"`
	Concepto  string `json:"concepto"`
	Monto     int64  `json:"monto"`
	Fecha     string `json:"fecha"`
	MesGasto  int    `json:"mes_gasto"`
	AnioGasto int    `json:"anio_gasto"`
	Tipo      string `json:"tipo"`
}

func parsePeriodo(c *fiber.Ctx) (finanzas.Periodo, error) {
	p := finanzas.Periodo{
		Mes:  c.QueryInt("mes"),
		Anio: c.QueryInt("anio"),
	}
	if p.Mes < 0 || p.Mes > 12 {
		return p, fiber.NewError(fiber.StatusBadRequest, "mes inválido")
	}
	if p.Anio < 0 {
		return p, fiber.NewError(fiber.StatusBadRequest, "anio inválido")
	}
	return p, nil
}

// GET /api/reportes/datos?mes=&anio=
// Los filtros de mes y año se aplican de forma independiente sobre las
// listas; los totales siempre salen de CalcularTotalesMes con el mes/año
// pedido o el actual.
func DatosReporteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePeriodo(c)
		if err != nil {
			return err
		}

		ventasQ := db.Preload("Producto").Order("fecha desc")
		gastosQ := db.Order("fecha desc")
		if p.Mes > 0 {
			ventasQ = ventasQ.Where("mes_venta = ?", p.Mes)
			gastosQ = gastosQ.Where("mes_gasto = ?", p.Mes)
		}
		if p.Anio > 0 {
			ventasQ = ventasQ.Where("anio_venta = ?", p.Anio)
			gastosQ = gastosQ.Where("anio_gasto = ?", p.Anio)
		}

		var ventas []models.Venta
		if err := ventasQ.Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas")
		}
		var gastos []models.Gasto
		if err := gastosQ.Find(&gastos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los gastos")
		}

		ahora := time.Now()
		mes, anio := p.Mes, p.Anio
		if mes == 0 {
			mes = int(ahora.Month())
		}
		if anio == 0 {
			anio = ahora.Year()
		}
		totales, err := finanzas.CalcularTotalesMes(db, mes, anio)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron calcular los totales")
		}

		ventasRes := make([]ventaItem, 0, len(ventas))
		for _, v := range ventas {
			ventasRes = append(ventasRes, ventaItem{
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
			})
		}

		gastosRes := make([]gastoItem, 0, len(gastos))
		for _, g := range gastos {
			gastosRes = append(gastosRes, gastoItem{
				ID:        g.ID,
				Concepto:  g.Concepto,
				Monto:     g.Monto,
				Fecha:     g.Fecha.Format(time.RFC3339),
				MesGasto:  g.MesGasto,
				AnioGasto: g.AnioGasto,
				Tipo:      string(g.Tipo),
			})
		}

		// los filtros ausentes se devuelven como null, no como cero
		var mesRes, anioRes *int
		if p.Mes > 0 {
			mesRes = &p.Mes
		}
		if p.Anio > 0 {
			anioRes = &p.Anio
		}

		return c.JSON(fiber.Map{
			"ventas":  ventasRes,
			"gastos":  gastosRes,
			"totales": totales,
			"mes":     mesRes,
			"anio":    anioRes,
		})
	}
}

// NombreArchivoReporte arma el nombre del archivo según el período:
// reporte_<mes>_<anio>, reporte_<anio> o reporte_general.
func NombreArchivoReporte(p finanzas.Periodo, extension string) string {
	switch {
	case p.Mes > 0 && p.Anio > 0:
		return fmt.Sprintf("reporte_%s_%d.%s", strings.ToLower(NombreMes(p.Mes)), p.Anio, extension)
	case p.Anio > 0:
		return fmt.Sprintf("reporte_%d.%s", p.Anio, extension)
	default:
		return "reporte_general." + extension
	}
}

// GET /api/reportes/pdf?mes=&anio=
func PDFReporteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePeriodo(c)
		if err != nil {
			return err
		}

		contenido, err := GenerarPDF(db, p)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el PDF")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		// inline para poder compartirlo sin forzar descarga
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+NombreArchivoReporte(p, "pdf")+`"`)
		return c.Send(contenido)
	}
}

// GET /api/reportes/excel?mes=&anio=
func ExcelReporteHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePeriodo(c)
		if err != nil {
			return err
		}

		contenido, err := GenerarExcel(db, p)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar la planilla")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+NombreArchivoReporte(p, "xlsx")+`"`)
		return c.Send(contenido)
	}
}
