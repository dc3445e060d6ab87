package scraper

import "testing"

func TestNormalizeComuna(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Las Condes", "las-condes"},
		{"las-condes", "las-condes"},
		{"  Providencia ", "providencia"},
		{"La Florida", "la-florida"},
	}

	for _, tt := range tests {
		if got := NormalizeComuna(tt.in); got != tt.want {
			t.Errorf("NormalizeComuna(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildSearchURL(t *testing.T) {
	got := BuildSearchURL("Las Condes", "departamento")
	want := "https://www.portalinmobiliario.com/venta/departamento/las-condes-metropolitana"
	if got != want {
		t.Errorf("BuildSearchURL() = %q, want %q", got, want)
	}

	got = BuildSearchURL("nunoa", "casa")
	want = "https://www.portalinmobiliario.com/venta/casa/nunoa-metropolitana"
	if got != want {
		t.Errorf("BuildSearchURL() = %q, want %q", got, want)
	}
}
