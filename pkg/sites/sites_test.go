package sites

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeList(t, `{"countries": [
		{"name": "United Kingdom", "url": "https://www.gov.uk", "tld": "uk"},
		{"name": "Germany", "url": "https://www.bund.de"}
	]}`)

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].TLD != "uk" {
		t.Errorf("explicit tld = %q", list[0].TLD)
	}
	if list[1].TLD != "de" {
		t.Errorf("derived tld = %q, want de", list[1].TLD)
	}
}

func TestLoadFaults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{nope`},
		{"empty list", `{"countries": []}`},
		{"duplicate identifier", `{"countries": [
			{"name": "A", "url": "https://a.example", "tld": "uk"},
			{"name": "B", "url": "https://b.example", "tld": "uk"}
		]}`},
		{"missing url", `{"countries": [{"name": "A", "tld": "uk"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeList(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing site list")
	}
}

func TestDeriveTLD(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.gov.uk", "uk"}, // gov.uk is itself a public suffix
		{"https://www.bund.de", "de"},
		{"https://www.gouvernement.fr/path", "fr"},
	}
	for _, tt := range tests {
		got, err := DeriveTLD(tt.url)
		if err != nil {
			t.Errorf("DeriveTLD(%s): %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DeriveTLD(%s) = %q, want %q", tt.url, got, tt.want)
		}
	}

	if _, err := DeriveTLD("not a url"); err == nil {
		t.Error("expected error for unparseable input")
	}
}
