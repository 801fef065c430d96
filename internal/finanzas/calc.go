// Package finanzas concentra las derivaciones financieras del sistema:
// costo unitario mensual, stock disponible por lote, totales del mes y
// estadísticas del dashboard. Todas son funciones de consulta puras sobre
// un handle de base de datos explícito; ninguna escribe.
package finanzas

import (
	"time"

	"github.com/voeseboin/fabrica-app/internal/models"

	"gorm.io/gorm"
)

type TotalesMes struct {
	Ventas         int64 `json:"ventas"`
	GastosFabrica  int64 `json:"gastos_fabrica"`
	GastosPersonal int64 `json:"gastos_personal"`
	GastosTotal    int64 `json:"gastos_total"`
	Ganancias      int64 `json:"ganancias"`
	Balance        int64 `json:"balance"`
}

type ProduccionDisponible struct {
	ID            uint  `json:"id"`
	Mes           int   `json:"mes"`
	Anio          int   `json:"anio"`
	CantidadTotal int   `json:"cantidad_total"`
	Disponible    int   `json:"disponible"`
	CostoUnitario int64 `json:"costo_unitario"`
}

type DashboardStats struct {
	TotalProductos  int64      `json:"total_productos"`
	TotalProduccion int64      `json:"total_produccion"`
	TotalVentas     int64      `json:"total_ventas"`
	DineroTotal     int64      `json:"dinero_total"`
	MesActual       int        `json:"mes_actual"`
	AnioActual      int        `json:"anio_actual"`
	TotalesMes      TotalesMes `json:"totales_mes"`
}

func sumInt64(q *gorm.DB, expr string) (int64, error) {
	var total int64
	err := q.Select("COALESCE(SUM(" + expr + "), 0)").Scan(&total).Error
	return total, err
}

// CostoUnitarioMes reparte los gastos de fábrica del período entre las
// unidades producidas en el mismo período, truncando hacia cero. Si no hubo
// producción devuelve 0. Se llama una sola vez, al registrar el lote; el
// resultado queda congelado en la producción.
func CostoUnitarioMes(db *gorm.DB, mes, anio int) (int64, error) {
	gastos, err := sumInt64(db.Model(&models.Gasto{}).
		Where("mes_gasto = ? AND anio_gasto = ? AND tipo = ?", mes, anio, models.GastoFabrica), "monto")
	if err != nil {
		return 0, err
	}

	unidades, err := sumInt64(db.Model(&models.Produccion{}).
		Where("mes = ? AND anio = ?", mes, anio), "cantidad")
	if err != nil {
		return 0, err
	}

	if unidades <= 0 {
		return 0, nil
	}
	return gastos / unidades, nil
}

// StockDisponible es la cantidad del lote que todavía no se vendió.
func StockDisponible(db *gorm.DB, produccionID uint) (int, error) {
	vendido, err := sumInt64(db.Model(&models.Venta{}).
		Where("produccion_id = ?", produccionID), "cantidad")
	if err != nil {
		return 0, err
	}

	var prod models.Produccion
	if err := db.First(&prod, "id = ?", produccionID).Error; err != nil {
		return 0, err
	}
	return prod.Cantidad - int(vendido), nil
}

// ProduccionesConStock lista los lotes de un producto con disponibilidad
// positiva, para elegir contra cuál vender.
func ProduccionesConStock(db *gorm.DB, productoID uint) ([]ProduccionDisponible, error) {
	var producciones []models.Produccion
	if err := db.Where("producto_id = ?", productoID).Find(&producciones).Error; err != nil {
		return nil, err
	}

	resultado := make([]ProduccionDisponible, 0, len(producciones))
	for _, p := range producciones {
		vendido, err := sumInt64(db.Model(&models.Venta{}).
			Where("produccion_id = ?", p.ID), "cantidad")
		if err != nil {
			return nil, err
		}

		disponible := p.Cantidad - int(vendido)
		if disponible > 0 {
			resultado = append(resultado, ProduccionDisponible{
				ID:            p.ID,
				Mes:           p.Mes,
				Anio:          p.Anio,
				CantidadTotal: p.Cantidad,
				Disponible:    disponible,
				CostoUnitario: p.CostoUnitarioCalculado,
			})
		}
	}
	return resultado, nil
}

// CalcularTotalesMes arma el resumen financiero de un mes. Ganancias y
// balance son dos números independientes a propósito: el balance resta
// todos los gastos de los ingresos (vista de caja), las ganancias solo
// restan el costo de producción de cada venta. La diferencia entre ambos
// son los gastos personales del período.
func CalcularTotalesMes(db *gorm.DB, mes, anio int) (TotalesMes, error) {
	var t TotalesMes
	var err error

	t.Ventas, err = sumInt64(db.Model(&models.Venta{}).
		Where("mes_venta = ? AND anio_venta = ?", mes, anio), "precio_aplicado * cantidad - descuento")
	if err != nil {
		return t, err
	}

	t.GastosFabrica, err = sumInt64(db.Model(&models.Gasto{}).
		Where("mes_gasto = ? AND anio_gasto = ? AND tipo = ?", mes, anio, models.GastoFabrica), "monto")
	if err != nil {
		return t, err
	}

	t.GastosPersonal, err = sumInt64(db.Model(&models.Gasto{}).
		Where("mes_gasto = ? AND anio_gasto = ? AND tipo = ?", mes, anio, models.GastoPersonal), "monto")
	if err != nil {
		return t, err
	}

	t.Ganancias, err = sumInt64(db.Model(&models.Venta{}).
		Where("mes_venta = ? AND anio_venta = ?", mes, anio), "ganancia_real")
	if err != nil {
		return t, err
	}

	t.GastosTotal = t.GastosFabrica + t.GastosPersonal
	t.Balance = t.Ventas - t.GastosTotal
	return t, nil
}

// DineroTotal es el saldo acumulado de toda la historia: ingresos por ventas
// menos gastos de ambos tipos. No incluye componente de costo unitario.
func DineroTotal(db *gorm.DB) (int64, error) {
	ventas, err := sumInt64(db.Model(&models.Venta{}), "precio_aplicado * cantidad - descuento")
	if err != nil {
		return 0, err
	}

	gastos, err := sumInt64(db.Model(&models.Gasto{}), "monto")
	if err != nil {
		return 0, err
	}

	return ventas - gastos, nil
}

// CalcularDashboardStats junta los agregados de la pantalla principal.
func CalcularDashboardStats(db *gorm.DB, ahora time.Time) (DashboardStats, error) {
	var s DashboardStats
	var err error

	if err = db.Model(&models.Producto{}).Where("estado = ?", models.EstadoActivo).Count(&s.TotalProductos).Error; err != nil {
		return s, err
	}

	s.TotalProduccion, err = sumInt64(db.Model(&models.Produccion{}), "cantidad")
	if err != nil {
		return s, err
	}

	s.TotalVentas, err = sumInt64(db.Model(&models.Venta{}), "cantidad")
	if err != nil {
		return s, err
	}

	s.DineroTotal, err = DineroTotal(db)
	if err != nil {
		return s, err
	}

	s.MesActual = int(ahora.Month())
	s.AnioActual = ahora.Year()

	s.TotalesMes, err = CalcularTotalesMes(db, s.MesActual, s.AnioActual)
	return s, err
}

// TotalesGastos acumula los gastos históricos por tipo.
func TotalesGastos(db *gorm.DB) (fabrica, personal int64, err error) {
	fabrica, err = sumInt64(db.Model(&models.Gasto{}).
		Where("tipo = ?", models.GastoFabrica), "monto")
	if err != nil {
		return 0, 0, err
	}

	personal, err = sumInt64(db.Model(&models.Gasto{}).
		Where("tipo = ?", models.GastoPersonal), "monto")
	if err != nil {
		return 0, 0, err
	}

	return fabrica, personal, nil
}
