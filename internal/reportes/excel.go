package reportes

import (
	"bytes"

	"github.com/voeseboin/fabrica-app/internal/finanzas"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GenerarExcel exporta el mismo reporte como planilla: una hoja de resumen
// y una hoja por cada tabla de detalle.
func GenerarExcel(db *gorm.DB, p finanzas.Periodo) ([]byte, error) {
	totales, err := finanzas.CalcularTotalesPeriodo(db, p)
	if err != nil {
		return nil, err
	}

	ventas, err := finanzas.VentasPeriodo(db, p, maxFilasReporte)
	if err != nil {
		return nil, err
	}

	gastos, err := finanzas.GastosPeriodo(db, p, maxFilasReporte)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Resumen
	resumen := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(resumen, "Resumen"); err != nil {
		return nil, err
	}
	filasResumen := [][]interface{}{
		{"Total Ventas", totales.Ventas},
		{"Gastos de Fábrica", totales.GastosFabrica},
		{"Gastos Personales", totales.GastosPersonal},
		{"Total Gastos", totales.GastosTotal},
		{"Ganancia Neta", totales.Ganancias},
		{"Balance", totales.Balance},
	}
	for i, fila := range filasResumen {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Resumen", cell, &fila); err != nil {
			return nil, err
		}
	}

	// Ventas
	if _, err := f.NewSheet("Ventas"); err != nil {
		return nil, err
	}
	encVentas := []interface{}{"Fecha", "Producto", "Cantidad", "Precio", "Descuento", "Total", "Ganancia"}
	if err := f.SetSheetRow("Ventas", "A1", &encVentas); err != nil {
		return nil, err
	}
	for i, v := range ventas {
		fila := []interface{}{
			v.Fecha.Format("02/01/2006"),
			v.Producto.Nombre,
			v.Cantidad,
			v.PrecioAplicado,
			v.Descuento,
			v.PrecioAplicado*int64(v.Cantidad) - v.Descuento,
			v.GananciaReal,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Ventas", cell, &fila); err != nil {
			return nil, err
		}
	}

	// Gastos
	if _, err := f.NewSheet("Gastos"); err != nil {
		return nil, err
	}
	encGastos := []interface{}{"Fecha", "Concepto", "Tipo", "Monto"}
	if err := f.SetSheetRow("Gastos", "A1", &encGastos); err != nil {
		return nil, err
	}
	for i, g := range gastos {
		fila := []interface{}{
			g.Fecha.Format("02/01/2006"),
			g.Concepto,
			string(g.Tipo),
			g.Monto,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Gastos", cell, &fila); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
