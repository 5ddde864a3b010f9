package palette

import (
	"encoding/json"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "kebab case", input: "light-vibrant", want: LightVibrant},
		{name: "snake case", input: "dark_muted", want: DarkMuted},
		{name: "title", input: "Light Muted", want: LightMuted},
		{name: "run together", input: "darkvibrant", want: DarkVibrant},
		{name: "upper case", input: "VIBRANT", want: Vibrant},
		{name: "padded", input: "  muted ", want: Muted},
		{name: "unknown", input: "neon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	kinds := AllKinds()
	if len(kinds) != 6 {
		t.Fatalf("AllKinds() returned %d kinds, want 6", len(kinds))
	}

	wantTitles := []string{"Light Vibrant", "Vibrant", "Dark Vibrant", "Light Muted", "Muted", "Dark Muted"}
	for i, k := range kinds {
		if k.Title() != wantTitles[i] {
			t.Errorf("kind %d title = %q, want %q", i, k.Title(), wantTitles[i])
		}
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), parsed, err, k)
		}
	}

	if Kind(42).Valid() {
		t.Error("Kind(42) should not be valid")
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}

func TestKindSet(t *testing.T) {
	var k Kind
	if err := k.Set("dark-vibrant"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if k != DarkVibrant {
		t.Errorf("Set gave %v, want %v", k, DarkVibrant)
	}
	if err := k.Set("bogus"); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if k != DarkVibrant {
		t.Error("failed Set should leave the value unchanged")
	}
}

func TestKindJSON(t *testing.T) {
	in := map[Kind]string{LightMuted: "#A0B0C0"}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"light-muted":"#A0B0C0"}` {
		t.Errorf("Marshal = %s", data)
	}

	var out map[Kind]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out[LightMuted] != "#A0B0C0" {
		t.Errorf("round trip lost value: %v", out)
	}

	if _, err := Kind(9).MarshalText(); err == nil {
		t.Error("Expected error marshalling invalid kind")
	}
}

func TestAlgorithmSet(t *testing.T) {
	var a Algorithm
	for _, name := range []string{"kmeans", "dominant", "prominent"} {
		if err := a.Set(name); err != nil {
			t.Errorf("Set(%q) failed: %v", name, err)
		}
		if string(a) != name {
			t.Errorf("Set(%q) gave %q", name, a)
		}
	}
	if err := a.Set("median-cut"); err == nil {
		t.Error("Expected error for unknown algorithm")
	}
	if a.Type() != "algorithm" {
		t.Errorf("Type() = %q", a.Type())
	}
}
