package reportes

import (
	"bytes"
	"strconv"
	"time"

	"github.com/voeseboin/fabrica-app/internal/finanzas"

	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"
)

// Máximo de filas por tabla en el documento.
const maxFilasReporte = 50

const fuente = "Helvetica"

// GenerarPDF arma el reporte en A4 horizontal: resumen financiero, detalle
// de ventas y detalle de gastos del período, cada tabla con sus totales.
func GenerarPDF(db *gorm.DB, p finanzas.Periodo) ([]byte, error) {
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

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	// Título y subtítulo del período
	pdf.SetFont(fuente, "B", 20)
	pdf.CellFormat(0, 12, tr("Reporte de Fábrica"), "", 1, "C", false, 0, "")

	pdf.SetFont(fuente, "", 14)
	switch {
	case p.Mes > 0 && p.Anio > 0:
		pdf.CellFormat(0, 8, tr(NombreMes(p.Mes)+" "+itoa(p.Anio)), "", 1, "C", false, 0, "")
	case p.Anio > 0:
		pdf.CellFormat(0, 8, tr("Año "+itoa(p.Anio)), "", 1, "C", false, 0, "")
	default:
		pdf.CellFormat(0, 8, "Reporte General", "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont(fuente, "", 10)
	pdf.CellFormat(0, 6, "Generado: "+time.Now().Format("02/01/2006 15:04"), "", 0, "R", false, 0, "")
	pdf.Ln(10)

	// Resumen financiero
	seccion(pdf, tr, "Resumen Financiero")
	resumen := [][2]string{
		{"Total Ventas:", FormatearGuaranies(totales.Ventas)},
		{"Gastos de Fabrica:", FormatearGuaranies(totales.GastosFabrica)},
		{"Gastos Personales:", FormatearGuaranies(totales.GastosPersonal)},
		{"Total Gastos:", FormatearGuaranies(totales.GastosTotal)},
		{"Ganancia Neta:", FormatearGuaranies(totales.Ganancias)},
	}
	for _, fila := range resumen {
		pdf.SetFont(fuente, "B", 11)
		pdf.CellFormat(60, 7, fila[0], "", 0, "L", false, 0, "")
		pdf.SetFont(fuente, "", 11)
		pdf.CellFormat(0, 7, fila[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Detalle de ventas
	seccion(pdf, tr, "Detalle de Ventas")
	if len(ventas) > 0 {
		pdf.SetFont(fuente, "B", 10)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(30, 7, "Fecha", "", 0, "L", true, 0, "")
		pdf.CellFormat(60, 7, "Producto", "", 0, "L", true, 0, "")
		pdf.CellFormat(25, 7, "Cant.", "", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Precio", "", 0, "R", true, 0, "")
		pdf.CellFormat(35, 7, "Desc.", "", 0, "R", true, 0, "")
		pdf.CellFormat(35, 7, "Total", "", 0, "R", true, 0, "")
		pdf.CellFormat(35, 7, "Ganancia", "", 1, "R", true, 0, "")

		pdf.SetFont(fuente, "", 9)
		for _, v := range ventas {
			total := v.PrecioAplicado*int64(v.Cantidad) - v.Descuento
			pdf.CellFormat(30, 6, v.Fecha.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, tr(recortar(v.Producto.Nombre, 30)), "", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, itoa(v.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, FormatearGuaranies(v.PrecioAplicado), "", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, FormatearGuaranies(v.Descuento), "", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, FormatearGuaranies(total), "", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, FormatearGuaranies(v.GananciaReal), "", 1, "R", false, 0, "")
		}

		pdf.SetFont(fuente, "B", 10)
		pdf.CellFormat(150, 7, "Total Ventas:", "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, FormatearGuaranies(totales.Ventas), "", 1, "R", false, 0, "")
	} else {
		pdf.SetFont(fuente, "", 11)
		pdf.CellFormat(0, 7, "No hay ventas registradas", "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	if pdf.GetY() > 150 {
		pdf.AddPage()
	}

	// Detalle de gastos
	seccion(pdf, tr, "Detalle de Gastos")
	if len(gastos) > 0 {
		pdf.SetFont(fuente, "B", 10)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(30, 7, "Fecha", "", 0, "L", true, 0, "")
		pdf.CellFormat(80, 7, "Concepto", "", 0, "L", true, 0, "")
		pdf.CellFormat(30, 7, "Tipo", "", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Monto", "", 1, "R", true, 0, "")

		pdf.SetFont(fuente, "", 9)
		for _, g := range gastos {
			pdf.CellFormat(30, 6, g.Fecha.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(80, 6, tr(recortar(g.Concepto, 40)), "", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, string(g.Tipo), "", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, FormatearGuaranies(g.Monto), "", 1, "R", false, 0, "")
		}

		pdf.Ln(3)
		pdf.SetFont(fuente, "B", 10)
		pdf.CellFormat(140, 7, "Total Gastos de Fabrica:", "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, FormatearGuaranies(totales.GastosFabrica), "", 1, "R", false, 0, "")
		pdf.CellFormat(140, 7, "Total Gastos Personales:", "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, FormatearGuaranies(totales.GastosPersonal), "", 1, "R", false, 0, "")
		pdf.CellFormat(140, 7, "Total Gastos:", "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, FormatearGuaranies(totales.GastosTotal), "", 1, "R", false, 0, "")
	} else {
		pdf.SetFont(fuente, "", 11)
		pdf.CellFormat(0, 7, "No hay gastos registrados", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func seccion(pdf *fpdf.Fpdf, tr func(string) string, titulo string) {
	pdf.SetFont(fuente, "B", 14)
	pdf.SetFillColor(50, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 10, tr(titulo), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func recortar(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
