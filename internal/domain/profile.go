package domain

import "time"

// ProfileUser es la vista publica del usuario embebida en un perfil.
type ProfileUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

type Profile struct {
	ID           string       `json:"_id"`
	UserID       string       `json:"-"`
	User         ProfileUser  `json:"user"`
	Company      string       `json:"company,omitempty"`
	Location     string       `json:"location,omitempty"`
	Website      string       `json:"website,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Status       string       `json:"status"`
	SpotlightPin string       `json:"spotlightpin,omitempty"`
	Skills       []string     `json:"skills"`
	Social       SocialLinks  `json:"social"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	UpdatedAt    time.Time    `json:"date"`
}

// Experience es una entrada de la lista de creditos del perfil.
// To en nil significa que el trabajo sigue vigente.
type Experience struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Role        string     `json:"role,omitempty"`
	Company     string     `json:"company"`
	Director    string     `json:"director,omitempty"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"_id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}
