package entity

import "time"

// Company representa una empresa emisora (tenant del sistema).
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Website   string
	Siret     string
	LogoPath  string // relativo al directorio público (ej. uploads/logos/logo-1.png)
	Theme     Theme
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Theme colores de marca de la empresa, en hex de 7 caracteres (#RRGGBB).
// Un color vacío o inválido se reemplaza por el valor por defecto al renderizar.
type Theme struct {
	Primary   string
	Secondary string
	Accent    string
	Text      string
}
