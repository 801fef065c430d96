package finanzas

import (
	"github.com/voeseboin/fabrica-app/internal/models"

	"gorm.io/gorm"
)

// Periodo es el filtro de los reportes: mes y año, solo año, o todo el
// histórico cuando ambos valen cero.
type Periodo struct {
	Mes  int
	Anio int
}

func (p Periodo) filtrarVentas(q *gorm.DB) *gorm.DB {
	if p.Mes > 0 && p.Anio > 0 {
		return q.Where("mes_venta = ? AND anio_venta = ?", p.Mes, p.Anio)
	}
	if p.Anio > 0 {
		return q.Where("anio_venta = ?", p.Anio)
	}
	return q
}

func (p Periodo) filtrarGastos(q *gorm.DB) *gorm.DB {
	if p.Mes > 0 && p.Anio > 0 {
		return q.Where("mes_gasto = ? AND anio_gasto = ?", p.Mes, p.Anio)
	}
	if p.Anio > 0 {
		return q.Where("anio_gasto = ?", p.Anio)
	}
	return q
}

// CalcularTotalesPeriodo es la variante de CalcularTotalesMes que usan los
// reportes, con el filtro relajado del período.
func CalcularTotalesPeriodo(db *gorm.DB, p Periodo) (TotalesMes, error) {
	var t TotalesMes
	var err error

	t.Ventas, err = sumInt64(p.filtrarVentas(db.Model(&models.Venta{})), "precio_aplicado * cantidad - descuento")
	if err != nil {
		return t, err
	}

	t.GastosFabrica, err = sumInt64(p.filtrarGastos(db.Model(&models.Gasto{}).
		Where("tipo = ?", models.GastoFabrica)), "monto")
	if err != nil {
		return t, err
	}

	t.GastosPersonal, err = sumInt64(p.filtrarGastos(db.Model(&models.Gasto{}).
		Where("tipo = ?", models.GastoPersonal)), "monto")
	if err != nil {
		return t, err
	}

	t.Ganancias, err = sumInt64(p.filtrarVentas(db.Model(&models.Venta{})), "ganancia_real")
	if err != nil {
		return t, err
	}

	t.GastosTotal = t.GastosFabrica + t.GastosPersonal
	t.Balance = t.Ventas - t.GastosTotal
	return t, nil
}

// VentasPeriodo devuelve las ventas del período, más recientes primero.
func VentasPeriodo(db *gorm.DB, p Periodo, limite int) ([]models.Venta, error) {
	q := p.filtrarVentas(db.Preload("Producto")).Order("fecha desc")
	if limite > 0 {
		q = q.Limit(limite)
	}

	var ventas []models.Venta
	err := q.Find(&ventas).Error
	return ventas, err
}

// GastosPeriodo devuelve los gastos del período, más recientes primero.
func GastosPeriodo(db *gorm.DB, p Periodo, limite int) ([]models.Gasto, error) {
	q := p.filtrarGastos(db.Model(&models.Gasto{})).Order("fecha desc")
	if limite > 0 {
		q = q.Limit(limite)
	}

	var gastos []models.Gasto
	err := q.Find(&gastos).Error
	return gastos, err
}
