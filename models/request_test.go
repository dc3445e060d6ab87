package models

import "testing"

func TestScrapeRequest_Defaults(t *testing.T) {
	req := &ScrapeRequest{Comuna: "las-condes"}
	req.Defaults()

	if req.PropertyType != PropertyTypeApartment {
		t.Errorf("wrong default property type: %q", req.PropertyType)
	}
	if req.MaxPages != 3 {
		t.Errorf("wrong default page budget: %d", req.MaxPages)
	}
}

func TestScrapeRequest_DefaultsKeepExplicitValues(t *testing.T) {
	req := &ScrapeRequest{Comuna: "nunoa", PropertyType: PropertyTypeHouse, MaxPages: 7}
	req.Defaults()

	if req.PropertyType != PropertyTypeHouse || req.MaxPages != 7 {
		t.Errorf("explicit values must survive Defaults: %+v", req)
	}
}

func TestScrapeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ScrapeRequest
		wantErr bool
	}{
		{"valid", ScrapeRequest{Comuna: "las-condes", PropertyType: "departamento", MaxPages: 3}, false},
		{"valid casa", ScrapeRequest{Comuna: "maipu", PropertyType: "casa", MaxPages: 1}, false},
		{"empty comuna", ScrapeRequest{PropertyType: "departamento", MaxPages: 3}, true},
		{"unknown type", ScrapeRequest{Comuna: "maipu", PropertyType: "oficina", MaxPages: 3}, true},
		{"zero pages", ScrapeRequest{Comuna: "maipu", PropertyType: "casa", MaxPages: 0}, true},
		{"negative pages", ScrapeRequest{Comuna: "maipu", PropertyType: "casa", MaxPages: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				scrapeErr, ok := err.(*ScrapeError)
				if !ok {
					t.Fatalf("expected *ScrapeError, got %T", err)
				}
				if scrapeErr.Code != ErrCodeInvalidInput {
					t.Errorf("wrong error code: %q", scrapeErr.Code)
				}
			}
		})
	}
}
