package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jtlavin/portalinmo/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCSVWriter_WriteProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	properties := []models.Property{
		{
			URL:         "https://www.portalinmobiliario.com/MLC-1",
			Dormitorios: intPtr(3),
			Banos:       intPtr(2),
			Superficie:  strPtr("85.5 m²"),
			Ubicacion:   strPtr("Las Condes, Metropolitana"),
		},
		{
			URL: "https://www.portalinmobiliario.com/MLC-2",
		},
	}

	if err := NewCSVWriter(path).WriteProperties(properties); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"url", "dormitorios", "banos", "superficie", "ubicacion"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], col)
		}
	}

	if rows[1][1] != "3" || rows[1][2] != "2" || rows[1][3] != "85.5 m²" {
		t.Errorf("wrong full row: %v", rows[1])
	}
	for i := 1; i < 5; i++ {
		if rows[2][i] != "" {
			t.Errorf("nil field must be an empty cell, got %q at column %d", rows[2][i], i)
		}
	}
}

func TestCSVWriter_EmptyRunStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := NewCSVWriter(path).WriteProperties(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "url,dormitorios") {
		t.Errorf("missing header, got %q", string(raw))
	}
}

func TestWriteURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	urls := []string{
		"https://www.portalinmobiliario.com/MLC-1",
		"https://www.portalinmobiliario.com/MLC-2",
	}

	if err := WriteURLList(path, urls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 2 || lines[0] != urls[0] || lines[1] != urls[1] {
		t.Errorf("wrong file content: %q", string(raw))
	}
}
