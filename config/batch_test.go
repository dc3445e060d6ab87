package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `property_type: casa
max_pages: 2
comunas:
  - las-condes
  - providencia
  - nunoa
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	batch, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.PropertyType != "casa" {
		t.Errorf("wrong property type: %q", batch.PropertyType)
	}
	if batch.MaxPages != 2 {
		t.Errorf("wrong max pages: %d", batch.MaxPages)
	}
	if len(batch.Comunas) != 3 || batch.Comunas[0] != "las-condes" {
		t.Errorf("wrong comunas: %v", batch.Comunas)
	}
}

func TestLoadBatch_EmptyComunas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte("max_pages: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadBatch(path); err == nil {
		t.Fatal("expected an error for a batch with no comunas")
	}
}

func TestLoadBatch_MissingFile(t *testing.T) {
	if _, err := LoadBatch(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
