package analyze

import (
	"reflect"
	"testing"
)

func TestDefaultAnalyzeEnglish(t *testing.T) {
	a := New()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple text", "The quick brown fox", []string{"quick", "brown", "fox"}},
		{"punctuation", "Hello, world!", []string{"hello", "world"}},
		{"stop words removed", "the quick and the brown", []string{"quick", "brown"}},
		{"numbers", "Version 2024 release", []string{"version", "2024", "release"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Analyze(tt.input)
			if err != nil {
				t.Fatalf("Analyze error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Analyze(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultAnalyzeCJKPerCharacter(t *testing.T) {
	a := New()

	got, err := a.Analyze("神里綾華")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	want := []string{"神", "里", "綾", "華"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Analyze(CJK) = %v, want %v", got, want)
	}
}

func TestDefaultAnalyzeEmpty(t *testing.T) {
	a := New()

	got, err := a.Analyze("")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Analyze(\"\") = %v, want empty", got)
	}
}

func TestDefaultAnalyzeFullWidthFolding(t *testing.T) {
	a := New()

	got, err := a.Analyze("ＡＢＣ")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	want := []string{"abc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Analyze(fullwidth) = %v, want %v", got, want)
	}
}
