package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, c Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "devis-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:    "u-1",
		CompanyID: "c-1",
		Role:      RoleAdmin,
	}
}

func TestParse_TokenValido(t *testing.T) {
	claims, err := Parse(secret, "devis-api", sign(t, validClaims(), secret))
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "c-1", claims.CompanyID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	otherIssuer := validClaims()
	otherIssuer.Issuer = "otro"
	noCompany := validClaims()
	noCompany.CompanyID = ""

	tests := []struct {
		name  string
		token string
	}{
		{"firma incorrecta", sign(t, validClaims(), "otra-clave")},
		{"expirado", sign(t, expired, secret)},
		{"emisor distinto", sign(t, otherIssuer, secret)},
		{"sin empresa", sign(t, noCompany, secret)},
		{"basura", "no.es.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(secret, "devis-api", tt.token)
			assert.Error(t, err)
		})
	}
}

func TestParse_SecretVacio(t *testing.T) {
	_, err := Parse("", "", "x")
	assert.Error(t, err)
}
