package sales

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
)

// Series serie fija de los comprobantes.
const Series = "001"

// FormatOrderNumber arma el número de comprobante: {prefijo}001-{correlativo de 7 dígitos}.
func FormatOrderNumber(docType string, seq int) string {
	return fmt.Sprintf("%s%s-%07d", entity.DocumentPrefix(docType), Series, seq)
}

// ParseOrderSequence extrae el correlativo de un número de comprobante.
func ParseOrderSequence(number string) (int, bool) {
	i := strings.LastIndex(number, "-")
	if i < 0 || i == len(number)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(number[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MaxSequence devuelve el mayor correlativo entre los números dados (0 si no hay ninguno válido).
func MaxSequence(numbers []string) int {
	highest := 0
	for _, n := range numbers {
		if seq, ok := ParseOrderSequence(n); ok && seq > highest {
			highest = seq
		}
	}
	return highest
}
