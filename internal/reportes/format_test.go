package reportes

import (
	"testing"

	"github.com/voeseboin/fabrica-app/internal/finanzas"

	"github.com/stretchr/testify/assert"
)

func TestFormatearGuaranies(t *testing.T) {
	casos := []struct {
		valor    int64
		esperado string
	}{
		{0, "Gs. 0"},
		{999, "Gs. 999"},
		{1000, "Gs. 1.000"},
		{1500000, "Gs. 1.500.000"},
		{1234567890, "Gs. 1.234.567.890"},
		{-280000, "Gs. -280.000"},
	}

	for _, tc := range casos {
		assert.Equal(t, tc.esperado, FormatearGuaranies(tc.valor))
	}
}

func TestNombreMes(t *testing.T) {
	assert.Equal(t, "Enero", NombreMes(1))
	assert.Equal(t, "Diciembre", NombreMes(12))
	assert.Equal(t, "", NombreMes(0))
	assert.Equal(t, "", NombreMes(13))
}

func TestNombreArchivoReporte(t *testing.T) {
	assert.Equal(t, "reporte_marzo_2024.pdf", NombreArchivoReporte(finanzas.Periodo{Mes: 3, Anio: 2024}, "pdf"))
	assert.Equal(t, "reporte_2024.pdf", NombreArchivoReporte(finanzas.Periodo{Anio: 2024}, "pdf"))
	assert.Equal(t, "reporte_general.xlsx", NombreArchivoReporte(finanzas.Periodo{}, "xlsx"))
}
