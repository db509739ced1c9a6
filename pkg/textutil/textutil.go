// Package textutil normaliza textos libres que se guardan en el kardex y en los pedidos.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean recorta espacios, colapsa espacios internos y normaliza a NFC
// para que "Cancelación" escrito con tilde combinada se guarde igual que la forma compuesta.
func Clean(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// IsBlank indica si s queda vacío tras limpiarlo.
func IsBlank(s string) bool {
	return Clean(s) == ""
}
