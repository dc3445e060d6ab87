package storage

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/jtlavin/portalinmo/models"
)

// CSVWriter persists scraped properties to a CSV file. The column order
// is fixed so downstream notebooks can rely on positional access.
type CSVWriter struct {
	filename string
}

func NewCSVWriter(filename string) *CSVWriter {
	return &CSVWriter{filename: filename}
}

// WriteProperties writes all properties, header first, truncating any
// existing file. Unextracted optional fields become empty cells.
func (w *CSVWriter) WriteProperties(properties []models.Property) error {
	file, err := os.Create(w.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"url", "dormitorios", "banos", "superficie", "ubicacion"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range properties {
		record := []string{
			p.URL,
			intCell(p.Dormitorios),
			intCell(p.Banos),
			strCell(p.Superficie),
			strCell(p.Ubicacion),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteURLList writes one listing URL per line, for feeding a later
// detail-page pass.
func WriteURLList(filename string, urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	return os.WriteFile(filename, []byte(b.String()), 0o644)
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
