package reference_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devis-api/internal/domain/entity"
	"github.com/jhoicas/devis-api/internal/domain/reference"
)

func TestFormat(t *testing.T) {
	issued := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		docType string
		seq     int64
		want    string
	}{
		{"devis", entity.DocumentTypeQuote, 1, "D2025-0001"},
		{"factura", entity.DocumentTypeInvoice, 42, "F2025-0042"},
		{"tipo desconocido cae en devis", "otro", 7, "D2025-0007"},
		{"más de cuatro dígitos", entity.DocumentTypeQuote, 12345, "D2025-12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := reference.Format(tc.docType, issued, tc.seq)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, reference.IsValid(got))
		})
	}
}

func TestFormat_SecuenciaInvalida(t *testing.T) {
	_, err := reference.Format(entity.DocumentTypeQuote, time.Now(), 0)
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	assert.False(t, reference.IsValid(""))
	assert.False(t, reference.IsValid("Q2025-0001"))
	assert.False(t, reference.IsValid("D25-1"))
}
