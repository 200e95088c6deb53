package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/pkg/validator"
)

// errorStatus relación error de dominio -> status HTTP y código de respuesta.
var errorStatus = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN", "el nombre de usuario ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "ya existe un producto con ese SKU"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "la corrección deja el stock en negativo"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrUserDisabled, fiber.StatusForbidden, "USER_DISABLED", "usuario deshabilitado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
}

// writeError traduce err a la respuesta JSON correspondiente. Los errores no esperados se registran y responden 500.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidBody) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var verr *validator.Error
	if errors.As(err, &verr) {
		fields := make([]dto.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.FieldError{Field: f.Field, Message: f.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: fields})
	}
	var derr *domain.ValidationError
	if errors.As(err, &derr) {
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: derr.Error()}
		if derr.Field != "" {
			resp.Fields = []dto.FieldError{{Field: derr.Field, Message: derr.Message}}
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// writeProductError como writeError pero con el mensaje 404 del producto.
func writeProductError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return writeError(c, err)
}

// uuidParam lee un parámetro de ruta que debe ser UUID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", domain.Invalid(name, "debe ser un UUID válido")
	}
	return id.String(), nil
}

// errInvalidBody cuerpo que no se pudo decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

// bindJSON decodifica el cuerpo y valida las etiquetas validate del DTO.
// El error devuelto se responde con writeError.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validator.Struct(out)
}
