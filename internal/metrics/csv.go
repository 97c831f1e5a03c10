package metrics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/frotaops/frota/internal/domain"
)

// ExportFilename is the download name for the fueling export.
const ExportFilename = "abastecimentos.csv"

// ToCSV renders every fueling as a semicolon-delimited table with a
// pt-BR header, ascending by date (stable), every field double-quoted and
// amounts formatted with two decimals and a comma separator. The output is
// deterministic for a given snapshot; an empty snapshot yields only the
// header row.
//
// The unusual dialect (";" columns, "," decimals) is what spreadsheet
// software in comma-decimal locales expects, hence no encoding/csv.
func ToCSV(s domain.Snapshot) string {
	ordered := make([]domain.Fueling, len(s.Fuelings))
	copy(ordered, s.Fuelings)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	var b strings.Builder
	writeRow(&b, "Data", "Veículo", "Motorista", "Litros", "Custo")
	for _, f := range ordered {
		vehicleName := ""
		if v, ok := s.VehicleByID(f.VehicleID); ok {
			vehicleName = v.Name
		}
		driverName := ""
		if d, ok := s.DriverByID(f.DriverID); ok {
			driverName = d.Name
		}
		writeRow(&b, f.Date.String(), vehicleName, driverName, formatAmount(f.Liters), formatAmount(f.Cost))
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func formatAmount(v float64) string {
	return strings.Replace(strconv.FormatFloat(num(v), 'f', 2, 64), ".", ",", 1)
}
