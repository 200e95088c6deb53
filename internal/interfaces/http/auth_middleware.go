package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/pkg/jwt"
)

// Locals keys con los datos del usuario autenticado.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRoles    = "roles"
)

// DefaultTokenCookie cookie HttpOnly donde el login deja el token.
const DefaultTokenCookie = "access_token"

// AuthMiddleware valida el JWT (Bearer o cookie access_token) y carga usuario y roles en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return AuthMiddlewareWithCookie(jwtSecret, DefaultTokenCookie)
}

// AuthMiddlewareWithCookie igual que AuthMiddleware con un nombre de cookie propio.
func AuthMiddlewareWithCookie(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := extractToken(c, cookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieName string) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if cookieName != "" {
			if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
				return v, "", ""
			}
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// RequireRole deja pasar si el usuario tiene alguno de los roles ("ADMIN" y "ROLE_ADMIN" son equivalentes).
// Va después de AuthMiddleware. Token sin roles: 401; rol no permitido: 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(GetRoles(c)) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene roles"})
		}
		for _, r := range roles {
			if HasRole(c, r) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permisos para este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRoles devuelve los roles del token.
func GetRoles(c *fiber.Ctx) []string {
	r, _ := c.Locals(LocalRoles).([]string)
	return r
}

// HasRole indica si el usuario autenticado tiene el rol.
func HasRole(c *fiber.Ctx, role string) bool {
	want := entity.NormalizeRole(role)
	for _, r := range GetRoles(c) {
		if entity.NormalizeRole(r) == want {
			return true
		}
	}
	return false
}
