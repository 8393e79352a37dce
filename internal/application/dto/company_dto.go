package dto

import "time"

// CompanyRequest body para POST/PUT /api/companies. El logo se sube por otro
// canal; aquí solo llega su ruta relativa al directorio público.
type CompanyRequest struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Website             string `json:"website"`
	Address             string `json:"address"`
	Siret               string `json:"siret,omitempty"`
	LogoPath            string `json:"logo_path,omitempty"`
	ThemePrimaryColor   string `json:"theme_primary_color,omitempty"`
	ThemeSecondaryColor string `json:"theme_secondary_color,omitempty"`
	ThemeAccentColor    string `json:"theme_accent_color,omitempty"`
	ThemeTextColor      string `json:"theme_text_color,omitempty"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	Website             string    `json:"website"`
	Address             string    `json:"address"`
	Siret               string    `json:"siret,omitempty"`
	LogoPath            string    `json:"logo_path,omitempty"`
	ThemePrimaryColor   string    `json:"theme_primary_color"`
	ThemeSecondaryColor string    `json:"theme_secondary_color"`
	ThemeAccentColor    string    `json:"theme_accent_color"`
	ThemeTextColor      string    `json:"theme_text_color"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
