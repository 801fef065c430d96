package main

import (
	"log"
	"strings"

	"github.com/voeseboin/fabrica-app/internal/config"
	"github.com/voeseboin/fabrica-app/internal/dashboard"
	"github.com/voeseboin/fabrica-app/internal/database"
	"github.com/voeseboin/fabrica-app/internal/gastos"
	"github.com/voeseboin/fabrica-app/internal/produccion"
	"github.com/voeseboin/fabrica-app/internal/productos"
	"github.com/voeseboin/fabrica-app/internal/reportes"
	"github.com/voeseboin/fabrica-app/internal/ventas"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	app := newApp(db, cfg.CORSOrigins)

	log.Println("Servidor escuchando en el puerto", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

// newApp arma la aplicación con todas las rutas; separado de main para
// poder levantarla entera en los tests.
func newApp(db *gorm.DB, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success": false,
					"error":   e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Error interno del servidor",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	origins := strings.Split(corsOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Inicialización idempotente del esquema
	api.Get("/init", func(c *fiber.Ctx) error {
		if err := database.Migrate(db); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo inicializar la base de datos")
		}
		return c.JSON(fiber.Map{"success": true, "message": "Base de datos inicializada"})
	})

	// Dashboard
	api.Get("/dashboard", dashboard.DashboardHandler(db))

	// Productos
	api.Get("/productos", productos.ListProductosHandler(db))
	api.Post("/productos", productos.CreateProductoHandler(db))
	api.Put("/productos/:id", productos.UpdateProductoHandler(db))
	api.Delete("/productos/:id", productos.DeleteProductoHandler(db))
	api.Get("/productos/:id/producciones-disponibles", productos.ProduccionesDisponiblesHandler(db))

	// Producción
	api.Get("/produccion", produccion.ListProduccionHandler(db))
	api.Post("/produccion", produccion.CreateProduccionHandler(db))
	api.Delete("/produccion/:id", produccion.DeleteProduccionHandler(db))

	// Ventas
	api.Get("/ventas", ventas.ListVentasHandler(db))
	api.Post("/ventas", ventas.CreateVentaHandler(db))
	api.Delete("/ventas/:id", ventas.DeleteVentaHandler(db))

	// Gastos
	api.Get("/gastos", gastos.ListGastosHandler(db))
	api.Post("/gastos", gastos.CreateGastoHandler(db))
	api.Delete("/gastos/:id", gastos.DeleteGastoHandler(db))
	api.Get("/gastos/totales", gastos.TotalesGastosHandler(db))

	// Reportes
	api.Get("/reportes/datos", reportes.DatosReporteHandler(db))
	api.Get("/reportes/pdf", reportes.PDFReporteHandler(db))
	api.Get("/reportes/excel", reportes.ExcelReporteHandler(db))

	return app
}
