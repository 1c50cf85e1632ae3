package source

import (
	"reflect"
	"testing"
)

func TestNaturalSort(t *testing.T) {
	items := []string{"2.txt", "10.txt", "1.txt"}
	NaturalSort(items)

	expected := []string{"1.txt", "2.txt", "10.txt"}
	if !reflect.DeepEqual(items, expected) {
		t.Errorf("Expected %v, got %v", expected, items)
	}
}

func TestNaturalSortMixed(t *testing.T) {
	items := []string{"slide10.txt", "slide2.txt", "intro.txt", "slide1.txt"}
	NaturalSort(items)

	expected := []string{"intro.txt", "slide1.txt", "slide2.txt", "slide10.txt"}
	if !reflect.DeepEqual(items, expected) {
		t.Errorf("Expected %v, got %v", expected, items)
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"2", "10", true},
		{"10", "2", false},
		{"02", "2", false}, // leading zeros compare equal
		{"a1", "A2", true}, // case-insensitive outside digit runs
		{"1a", "1b", true},
		{"1", "1a", true},
	}

	for _, tt := range tests {
		if got := NaturalLess(tt.a, tt.b); got != tt.expected {
			t.Errorf("NaturalLess(%q, %q): expected %v, got %v", tt.a, tt.b, tt.expected, got)
		}
	}
}
