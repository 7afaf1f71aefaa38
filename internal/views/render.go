// Package views contiene las vistas de lectura (colección, detalle, inventario): piden datos a la
// API con un client.Request propio y los muestran como texto con "—" para valores nulos.
package views

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vin/internal/domain/entity"
)

// Missing texto para valores nulos.
const Missing = "—"

// Textos de estado.
const (
	MsgLoading = "Loading..."
	MsgEmpty   = "No wines found."
	MsgNoLog   = "No inventory changes yet."
)

func str(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Missing
	}
	return *s
}

func num(n *int) string {
	if n == nil {
		return Missing
	}
	return strconv.Itoa(*n)
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return Missing
	}
	return "$" + d.StringFixed(2)
}

func date(d *entity.Date) string {
	if d == nil {
		return Missing
	}
	return d.String()
}

// table escribe filas alineadas por tabulación.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// state escribe loading/error; devuelve true si ya no hay nada más que mostrar.
func state(w io.Writer, loading bool, errMsg string) (bool, error) {
	switch {
	case loading:
		_, err := fmt.Fprintln(w, MsgLoading)
		return true, err
	case errMsg != "":
		_, err := fmt.Fprintf(w, "Error: %s\n", errMsg)
		return true, err
	}
	return false, nil
}
