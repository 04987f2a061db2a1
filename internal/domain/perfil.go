package domain

import "strings"

// Perfil is the backend user behind the configured API token.
type Perfil struct {
	Username  string `json:"username,omitempty" yaml:"username"`
	Email     string `json:"email" yaml:"email"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Telefono  string `json:"telefono" yaml:"telefono"`
}

// NombreCompleto joins first and last name, falling back to the username.
func (p Perfil) NombreCompleto() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return p.Username
	}
	return name
}

// Normalize trims editable fields.
func (p *Perfil) Normalize() {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Telefono = strings.TrimSpace(p.Telefono)
}

// Validate checks the email address.
func (p Perfil) Validate() error {
	problems := Problems{}
	problems.Required("email", p.Email)
	problems.Email("email", p.Email)
	return problems.Err()
}

// Changes returns the editable fields for a PATCH request.
func (p Perfil) Changes() map[string]any {
	return map[string]any{
		"email":      p.Email,
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"telefono":   p.Telefono,
	}
}
