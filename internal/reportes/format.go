package reportes

import "strconv"

var nombresMes = [13]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// NombreMes devuelve el nombre del mes en español, o "" fuera de rango.
func NombreMes(mes int) string {
	if mes < 1 || mes > 12 {
		return ""
	}
	return nombresMes[mes]
}

// FormatearGuaranies arma el monto con separador de miles: "Gs. 1.500.000".
func FormatearGuaranies(valor int64) string {
	negativo := valor < 0
	if negativo {
		valor = -valor
	}

	s := strconv.FormatInt(valor, 10)
	n := len(s)
	out := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	if negativo {
		return "Gs. -" + string(out)
	}
	return "Gs. " + string(out)
}
