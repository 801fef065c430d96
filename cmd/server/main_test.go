package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voeseboin/fabrica-app/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return newApp(db, "http://localhost:5173")
}

func doJSON(t *testing.T, app *fiber.App, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

// Recorrido completo: alta de producto, gasto de fábrica, lote, venta y
// verificación del costo, la ganancia y el stock en cada paso.
func TestFlujoCompleto(t *testing.T) {
	app := testApp(t)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/init", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["success"])

	// producto
	resp, payload = doJSON(t, app, http.MethodPost, "/api/productos", fiber.Map{
		"nombre":           "Queso Paraguay",
		"precio_mayorista": 8000,
		"precio_minorista": 10000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	productoID := payload["producto"].(map[string]interface{})["id"].(float64)

	// gasto de fábrica del mes del lote
	resp, _ = doJSON(t, app, http.MethodPost, "/api/gastos", fiber.Map{
		"concepto": "Materia prima",
		"monto":    500000,
		"tipo":     "Fabrica",
		"mes":      3,
		"anio":     2024,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// lote: 500000 / 100 = 5000 por unidad
	resp, payload = doJSON(t, app, http.MethodPost, "/api/produccion", fiber.Map{
		"producto_id": productoID,
		"cantidad":    100,
		"mes":         3,
		"anio":        2024,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5000), payload["costo_unitario"])
	loteID := payload["produccion"].(map[string]interface{})["id"].(float64)

	// venta minorista de 30
	resp, payload = doJSON(t, app, http.MethodPost, "/api/ventas", fiber.Map{
		"producto_id":   productoID,
		"produccion_id": loteID,
		"cantidad":      30,
		"tipo_precio":   "minorista",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(150000), payload["ganancia_real"])

	// el lote quedó con 70 disponibles
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/productos/%.0f/producciones-disponibles", productoID), nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var disponibles []map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&disponibles))
	require.Len(t, disponibles, 1)
	assert.Equal(t, float64(70), disponibles[0]["disponible"])

	// el producto quedó con stock 70; ya no se puede dar de baja
	resp, payload = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/productos/%.0f", productoID), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, payload["success"])

	// dashboard consistente
	resp, payload = doJSON(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := payload["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_productos"])
	assert.Equal(t, float64(100), stats["total_produccion"])
	assert.Equal(t, float64(30), stats["total_ventas"])
	// 300000 de ventas - 500000 de gastos
	assert.Equal(t, float64(-200000), stats["dinero_total"])
}

func TestInitIdempotente(t *testing.T) {
	app := testApp(t)

	for i := 0; i < 2; i++ {
		resp, payload := doJSON(t, app, http.MethodGet, "/api/init", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, payload["success"])
	}
}
