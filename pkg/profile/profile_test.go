package profile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNormalizeJaneRex(t *testing.T) {
	got, err := Normalize(Profile{First: "Jane", Pet: "Rex"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{
		"Jane", "Janerex", "Rex", "Rexjane",
		"jane", "jane.rex", "janeRex", "jane_rex", "janerex",
		"rex", "rex.jane", "rexJane", "rex_jane", "rexjane",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize = %v\nwant %v", got, want)
	}
}

func TestNormalizeSingleField(t *testing.T) {
	got, err := Normalize(Profile{Company: "  ACME  "})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{"Acme", "acme"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalizeDuplicateValues(t *testing.T) {
	got, err := Normalize(Profile{First: "Rex", Pet: "rex"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{"Rex", "rex"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
	}{
		{"zero", Profile{}},
		{"whitespace", Profile{First: "  ", Pet: "\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.p)
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Normalize(%+v) err = %v, want ErrInvalidProfile", tt.p, err)
			}
		})
	}
}

func TestNormalizeNonEmptyWords(t *testing.T) {
	profiles := []Profile{
		{First: "a"},
		{Birth: "1990"},
		{First: "Jane", Last: "Doe", Nick: "jd", Birth: "1990", Pet: "Rex", Company: "Acme"},
	}
	for _, p := range profiles {
		got, err := Normalize(p)
		if err != nil {
			t.Fatalf("Normalize(%+v): %v", p, err)
		}
		if len(got) == 0 {
			t.Errorf("Normalize(%+v) returned no words", p)
		}
		for _, w := range got {
			if w == "" {
				t.Errorf("Normalize(%+v) returned an empty word", p)
			}
		}
		if !slices.IsSorted(got) {
			t.Errorf("Normalize(%+v) is not sorted", p)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"jane", "Jane"},
		{"JANE", "Jane"},
		{"jane.rex", "Jane.rex"},
		{"1990", "1990"},
		{"élodie", "Élodie"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Capitalize(tt.in); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Profile{First: "Jane", Pet: "Rex"}
	got := base.Merge(Profile{Pet: "Max", Company: " "})
	want := Profile{First: "Jane", Pet: "Max"}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	data := "first: Jane\nlast: Doe\nbirth: \"1990\"\npet: Rex\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Profile{First: "Jane", Last: "Doe", Birth: "1990", Pet: "Rex"}
	if p != want {
		t.Errorf("Load = %+v, want %+v", p, want)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing file err = %v, want os.ErrNotExist", err)
	}
}
