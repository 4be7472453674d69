package facility

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	l := Default()
	names := l.Names()
	if len(names) != 4 {
		t.Fatalf("len(Names()) = %d, want 4", len(names))
	}
	if !l.Contains("Massey Children Hospital") {
		t.Error("Contains(Massey Children Hospital) = false, want true")
	}
	if l.Contains("Unknown Facility") {
		t.Error("Contains(Unknown Facility) = true, want false")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	l, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if len(l.Names()) == 0 {
		t.Error("Load(\"\") returned empty list")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facilities.yaml")
	content := "facilities:\n  - Alpha Clinic\n  - \"  \"\n  - Beta Hospital\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"Alpha Clinic", "Beta Hospital"}
	got := l.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", ":\n\t-"},
		{"empty list", "facilities: []"},
		{"only blanks", "facilities:\n  - \"\"\n  - \" \""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.data)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestNames_ReturnsCopy(t *testing.T) {
	l := Default()
	names := l.Names()
	names[0] = "Mutated"
	if l.Names()[0] == "Mutated" {
		t.Error("Names() exposed internal slice")
	}
}
