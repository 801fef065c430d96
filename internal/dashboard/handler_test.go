package dashboard

import (
	"encoding/json"
	"fmt"
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

func TestDashboard(t *testing.T) {
	db := testDB(t)
	app := fiber.New()
	app.Get("/api/dashboard", DashboardHandler(db))

	conStock := models.Producto{Nombre: "Queso", StockActual: 50, Estado: models.EstadoActivo}
	require.NoError(t, db.Create(&conStock).Error)
	bajoStock := models.Producto{Nombre: "Dulce", StockActual: 3, Estado: models.EstadoActivo}
	require.NoError(t, db.Create(&bajoStock).Error)
	// inactivo con poco stock: no debe aparecer
	require.NoError(t, db.Create(&models.Producto{Nombre: "Retirado", StockActual: 0, Estado: models.EstadoArchivado}).Error)

	lote := models.Produccion{ProductoID: conStock.ID, Cantidad: 60, Mes: 1, Anio: 2024, FechaRegistro: time.Now()}
	require.NoError(t, db.Create(&lote).Error)

	// siete ventas: el dashboard corta en cinco
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.Venta{
			ProductoID: conStock.ID, ProduccionID: lote.ID, Cantidad: 1,
			PrecioAplicado: 1000, Fecha: time.Now().Add(time.Duration(i) * time.Minute),
			MesVenta: 1, AnioVenta: 2024,
		}).Error)
	}
	require.NoError(t, db.Create(&models.Gasto{
		Concepto: "Leche", Monto: 2000, Fecha: time.Now(), MesGasto: 1, AnioGasto: 2024, Tipo: models.GastoFabrica,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	stats := payload["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_productos"])
	assert.Equal(t, float64(60), stats["total_produccion"])
	assert.Equal(t, float64(7), stats["total_ventas"])
	assert.Equal(t, float64(5000), stats["dinero_total"])
	assert.Equal(t, float64(time.Now().Month()), stats["mes_actual"].(float64),
		fmt.Sprintf("mes_actual debe ser el corriente: %v", stats["mes_actual"]))

	bajo := payload["productos_bajo_stock"].([]interface{})
	require.Len(t, bajo, 1)
	assert.Equal(t, "Dulce", bajo[0].(map[string]interface{})["nombre"])

	assert.Len(t, payload["ultimas_ventas"].([]interface{}), 5)
	assert.Len(t, payload["ultimos_gastos"].([]interface{}), 1)
}
