package nominactl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/nominaweb/nominaweb/internal/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}

func writeStructured(w io.Writer, format string, value any) error {
	switch format {
	case formatJSON:
		return writeJSON(w, value)
	case formatYAML:
		return writeYAML(w, value)
	default:
		return fmt.Errorf("output format %q is not structured", format)
	}
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

// money renders an amount with Colombian separators, for example 1.234.567,89.
func money(value float64) string {
	return humanize.FormatFloat("#.###,##", domain.Round2(value))
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func id(value int64) string {
	if value <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", value)
}
