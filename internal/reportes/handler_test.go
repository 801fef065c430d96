package reportes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voeseboin/fabrica-app/internal/database"
	"github.com/voeseboin/fabrica-app/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"success": false, "error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
		},
	})
	app.Get("/api/reportes/datos", DatosReporteHandler(db))
	app.Get("/api/reportes/pdf", PDFReporteHandler(db))
	app.Get("/api/reportes/excel", ExcelReporteHandler(db))
	return app
}

func seedReporte(t *testing.T, db *gorm.DB) {
	t.Helper()

	producto := models.Producto{Nombre: "Queso", StockActual: 70, Estado: models.EstadoActivo}
	require.NoError(t, db.Create(&producto).Error)
	lote := models.Produccion{ProductoID: producto.ID, Cantidad: 100, Mes: 3, Anio: 2024, CostoUnitarioCalculado: 5000, FechaRegistro: time.Now()}
	require.NoError(t, db.Create(&lote).Error)

	require.NoError(t, db.Create(&models.Venta{
		ProductoID: producto.ID, ProduccionID: lote.ID, Cantidad: 30,
		PrecioAplicado: 10000, Fecha: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		MesVenta: 3, AnioVenta: 2024, GananciaReal: 150000,
	}).Error)
	require.NoError(t, db.Create(&models.Venta{
		ProductoID: producto.ID, ProduccionID: lote.ID, Cantidad: 10,
		PrecioAplicado: 10000, Fecha: time.Date(2024, 8, 2, 10, 0, 0, 0, time.UTC),
		MesVenta: 8, AnioVenta: 2024, GananciaReal: 50000,
	}).Error)

	require.NoError(t, db.Create(&models.Gasto{
		Concepto: "Leche", Monto: 500000, Fecha: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MesGasto: 3, AnioGasto: 2024, Tipo: models.GastoFabrica,
	}).Error)
	require.NoError(t, db.Create(&models.Gasto{
		Concepto: "Retiro", Monto: 80000, Fecha: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		MesGasto: 3, AnioGasto: 2024, Tipo: models.GastoPersonal,
	}).Error)
}

func TestDatosReporteFiltrado(t *testing.T) {
	db := testDB(t)
	app := testApp(db)
	seedReporte(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/datos?mes=3&anio=2024", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	ventas := payload["ventas"].([]interface{})
	require.Len(t, ventas, 1, "la venta de agosto queda afuera")
	venta := ventas[0].(map[string]interface{})
	assert.Equal(t, "Queso", venta["producto_nombre"])
	assert.Equal(t, float64(150000), venta["ganancia_real"])

	gastos := payload["gastos"].([]interface{})
	assert.Len(t, gastos, 2)

	totales := payload["totales"].(map[string]interface{})
	assert.Equal(t, float64(300000), totales["ventas"])
	assert.Equal(t, float64(580000), totales["gastos_total"])
	assert.Equal(t, float64(150000), totales["ganancias"])
	assert.Equal(t, float64(-280000), totales["balance"])

	assert.Equal(t, float64(3), payload["mes"])
	assert.Equal(t, float64(2024), payload["anio"])
}

func TestDatosReporteSinFiltro(t *testing.T) {
	db := testDB(t)
	app := testApp(db)
	seedReporte(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/datos", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload["ventas"].([]interface{}), 2)
	assert.Len(t, payload["gastos"].([]interface{}), 2)

	// sin filtros los períodos vuelven como null
	assert.Nil(t, payload["mes"])
	assert.Nil(t, payload["anio"])
}

func TestDatosReporteMesInvalido(t *testing.T) {
	db := testDB(t)
	app := testApp(db)

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/datos?mes=13", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPDFReporte(t *testing.T) {
	db := testDB(t)
	app := testApp(db)
	seedReporte(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/pdf?mes=3&anio=2024", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_marzo_2024.pdf")

	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, cuerpo)
	assert.Equal(t, "%PDF", string(cuerpo[:4]))
}

func TestPDFReporteGeneral(t *testing.T) {
	db := testDB(t)
	app := testApp(db)

	// sin datos: el reporte igual sale, con las leyendas de tablas vacías
	req := httptest.NewRequest(http.MethodGet, "/api/reportes/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_general.pdf")
}

func TestExcelReporte(t *testing.T) {
	db := testDB(t)
	app := testApp(db)
	seedReporte(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/excel?anio=2024", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_2024.xlsx")

	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, cuerpo)
	// firma zip del contenedor xlsx
	assert.Equal(t, "PK", string(cuerpo[:2]))
}
