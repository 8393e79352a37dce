package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"vacío", "", ""},
		{"solo control", "\x00\x01\x02\x1f\x7f\u0080\u009f", ""},
		{"espacios repetidos", "  Pose   et   fourniture  ", "Pose et fourniture"},
		{"control intercalado", "Chau\x00dière\x1b gaz", "Chaudière gaz"},
		{"saltos de línea", "ligne 1\nligne 2\r\n\tfin", "ligne 1 ligne 2 fin"},
		{"NFC", "e\u0301lectricite\u0301", "électricité"},
		{"acentos y símbolos", "Qté 2 × 100 €", "Qté 2 × 100 €"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "Client", orDefault("\x00 \t", "Client"))
	assert.Equal(t, "ACME", orDefault("ACME", "Client"))
}
