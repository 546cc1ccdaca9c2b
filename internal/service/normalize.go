package service

import (
	"net/url"
	"strings"
)

// normalizeURL lleva un enlace a su forma absoluta canónica en https.
// Una cadena vacía queda vacía; una cadena que no parsea como URL se
// descarta devolviendo vacío.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	parsed.Scheme = "https"
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}

// splitSkills convierte la lista de habilidades a su forma normalizada:
// un string se separa por comas recortando cada entrada y preservando el
// orden; un slice solo se recorta.
func splitSkills(raw []string) []string {
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func splitSkillsString(raw string) []string {
	return splitSkills(strings.Split(raw, ","))
}
