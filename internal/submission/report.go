package submission

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var reportHeader = []string{
	"Row number", "Producer ID", "Subsidiary ID", "Producer type", "Data submission period",
	"Producer size", "Waste type", "Packaging category", "Material type", "Material subtype",
	"From nation", "To nation", "Quantity (kg)", "Quantity (units)", "Issue", "Message",
}

// WriteErrorReport writes one CSV row per validation error, with its messages joined.
func WriteErrorReport(w io.Writer, errs []ProducerValidationError) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, e := range errs {
		row := []string{
			e.ProducerID,
			e.SubsidiaryID,
			e.ProducerType,
			e.DataSubmission,
			e.ProducerSize,
			e.WasteType,
			e.PackagingCategory,
			e.MaterialType,
			e.MaterialSubType,
			e.FromHomeNation,
			e.ToHomeNation,
			e.QuantityKg,
			e.QuantityUnits,
			e.Issue,
			strings.Join(e.ErrorMessages, "; "),
		}
		for i, cell := range row {
			row[i] = neutralise(cell)
		}
		row = append([]string{strconv.Itoa(e.RowNumber)}, row...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row %d: %w", e.RowNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// neutralise stops a spreadsheet from evaluating an uploaded cell as a formula.
func neutralise(cell string) string {
	if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}

// ReportFileName is the download name of the error report for an uploaded file.
func ReportFileName(uploadedName string) string {
	base := uploadedName
	if ext := ".csv"; len(base) >= len(ext) && strings.EqualFold(base[len(base)-len(ext):], ext) {
		base = base[:len(base)-len(ext)]
	}
	if base == "" {
		base = "file"
	}
	return base + " error report.csv"
}
