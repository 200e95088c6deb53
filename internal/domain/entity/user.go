package entity

import (
	"strings"
	"time"
)

// Roles válidos para User (formato de autoridad con prefijo ROLE_).
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"

	rolePrefix = "ROLE_"
)

// User representa un usuario del sistema.
// Roles se persiste como lista separada por comas ("ROLE_USER,ROLE_ADMIN").
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleList devuelve los roles del usuario como slice.
func (u *User) RoleList() []string {
	return ParseRoles(u.Roles)
}

// ParseRoles separa la lista por comas, recorta espacios y descarta vacíos.
func ParseRoles(roles string) []string {
	parts := strings.Split(roles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeRole pasa a mayúsculas y agrega el prefijo ROLE_ si falta ("admin" -> "ROLE_ADMIN").
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	if r == "" {
		return ""
	}
	if !strings.HasPrefix(r, rolePrefix) {
		r = rolePrefix + r
	}
	return r
}

// JoinRoles normaliza, deduplica y une los roles; sin roles devuelve ROLE_USER.
func JoinRoles(roles []string) string {
	seen := make(map[string]bool, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		n := NormalizeRole(r)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	if len(out) == 0 {
		return RoleUser
	}
	return strings.Join(out, ",")
}
