package catalog

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Одиночный О-1", "одиночный о-1"},
		{"  ОДИНОЧНЫЙ   О-1  ", "одиночный о-1"},
		{"Granite Classic", "granite classic"},
		{"", ""},
		{"   ", ""},
		{"Стела\tС-2", "стела с-2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Одиночный О-1", "odinochnyj-o-1"},
		{"Стела С-2", "stela-s-2"},
		{"Granite  Classic", "granite-classic"},
		{"Эксклюзив №7", "eksklyuziv-7"},
		{"--Памятник--", "pamyatnik"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHasLegacySentinelText(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		expected bool
	}{
		{"price on request phrase", "Памятник из гранита. Цена по запросу.", true},
		{"made to order phrase", "Изготавливается ПОД ЗАКАЗ в течение месяца", true},
		{"plain description", "Памятник из гранита с гравировкой", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLegacySentinelText(tt.desc); got != tt.expected {
				t.Errorf("HasLegacySentinelText(%q) = %v, want %v", tt.desc, got, tt.expected)
			}
		})
	}
}

func TestCategoryPolicy(t *testing.T) {
	if CategoryExclusive.Policy() != PolicyIndependentVariants {
		t.Error("exclusive category must use independent variant pricing")
	}
	for _, c := range []Category{CategorySingle, CategoryDouble, CategoryFamily, CategoryComplex} {
		if c.Policy() != PolicyInheritBase {
			t.Errorf("category %s must inherit base pricing", c)
		}
	}
	if Category("unknown").Policy() != PolicyInheritBase {
		t.Error("unknown categories must behave as inherit-base")
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories() {
		if !IsValidCategory(string(c)) {
			t.Errorf("IsValidCategory(%q) = false", c)
		}
	}
	if IsValidCategory("nonsense") {
		t.Error(`IsValidCategory("nonsense") = true`)
	}
}
