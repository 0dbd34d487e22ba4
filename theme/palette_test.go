package theme

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"hex passthrough", "#1D3557", "#1d3557", false},
		{"named black", "black", "#000000", false},
		{"named case-insensitive", "BLACK", "#000000", false},
		{"palette name", "accent", "#457b9d", false},
		{"garbage", "not-a-color", "", true},
		{"short hex", "#fff", "#ffffff", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := c.Hex(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ff0000", "Red"},
		{"black", "Black"},
		{"accent", "Blue"},
		{"", ""},
		{"not-a-color", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CategoryName(tt.in); got != tt.want {
				t.Errorf("CategoryName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#000000", "Black"},
		{"#ffffff", "White"},
		{"#808080", "Gray"},
		{"#ff0000", "Red"},
		{"#ffa500", "Orange"},
		{"#ffff00", "Yellow"},
		{"#00ff00", "Green"},
		{"#0000ff", "Blue"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, err := colorful.Hex(tt.hex)
			if err != nil {
				t.Fatalf("Hex(%q): %v", tt.hex, err)
			}
			if got := Category(c); got != tt.want {
				t.Errorf("Category(%s) = %s, want %s", tt.hex, got, tt.want)
			}
		})
	}
}
