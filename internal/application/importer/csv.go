// Package importer carga el catálogo inicial (productos, precio activo y stock) desde un CSV.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/pos-ventas/pkg/textutil"
)

// Row producto a importar.
type Row struct {
	Line        int // línea del archivo, para reportar errores
	Description string
	UnitPrice   decimal.Decimal
	NetCost     decimal.Decimal
	Stock       int
	Minimum     int // 0 = mínimo por defecto
}

// ErrBadHeader el CSV no trae las columnas esperadas.
var ErrBadHeader = errors.New("cabecera esperada: descripcion;precio;costo;stock[;minimo]")

// ReadCSV lee filas "descripcion;precio;costo;stock[;minimo]" con cabecera.
// Acepta ';' o ',' como separador y coma decimal. charset "latin1" decodifica ISO-8859-1 (exportes de Excel).
func ReadCSV(r io.Reader, charset string) ([]Row, error) {
	if strings.EqualFold(charset, "latin1") || strings.EqualFold(charset, "ISO-8859-1") {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = ';'
	if first, _, _ := strings.Cut(text, "\n"); !strings.Contains(first, ";") {
		cr.Comma = ','
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, ErrBadHeader
	}
	if len(header) < 4 || !strings.EqualFold(strings.TrimSpace(header[0]), "descripcion") {
		return nil, ErrBadHeader
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 0 || textutil.IsBlank(strings.Join(rec, "")) {
			continue
		}
		row, err := parseRow(rec, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string, line int) (Row, error) {
	if len(rec) < 4 {
		return Row{}, fmt.Errorf("línea %d: faltan columnas", line)
	}
	row := Row{Line: line, Description: textutil.Clean(rec[0])}
	if row.Description == "" {
		return Row{}, fmt.Errorf("línea %d: descripción vacía", line)
	}
	var err error
	if row.UnitPrice, err = parseDecimal(rec[1]); err != nil || !row.UnitPrice.IsPositive() {
		return Row{}, fmt.Errorf("línea %d: precio inválido %q", line, rec[1])
	}
	if row.NetCost, err = parseDecimal(rec[2]); err != nil || row.NetCost.IsNegative() {
		return Row{}, fmt.Errorf("línea %d: costo inválido %q", line, rec[2])
	}
	if row.Stock, err = strconv.Atoi(strings.TrimSpace(rec[3])); err != nil || row.Stock < 0 {
		return Row{}, fmt.Errorf("línea %d: stock inválido %q", line, rec[3])
	}
	if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
		if row.Minimum, err = strconv.Atoi(strings.TrimSpace(rec[4])); err != nil || row.Minimum < 0 {
			return Row{}, fmt.Errorf("línea %d: mínimo inválido %q", line, rec[4])
		}
	}
	return row, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
