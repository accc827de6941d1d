package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/backend"
)

// User-facing messages, kept verbatim from the POS UI.
const (
	MsgItemAlreadyInCart = "Este artículo ya está en el carrito. Puedes cambiar la cantidad desde el carrito."
	MsgServerError       = "Error en el servidor. Intenta de nuevo más tarde."
	MsgLoginFailed       = "Error al iniciar sesión. Verifica tus credenciales."
)

// backendError converts backend sentinels into JSON error responses. Nothing
// propagates unhandled: unknown errors become a generic server-error message.
func backendError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorBody("sesión expirada"))
	case errors.Is(err, backend.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody("no tienes permisos para esta acción"))
	case errors.Is(err, backend.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody(MsgItemAlreadyInCart))
	case errors.Is(err, backend.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody("recurso no encontrado"))
	case errors.Is(err, backend.ErrBadPayload):
		return c.JSON(http.StatusBadGateway, errorBody(MsgServerError))
	default:
		return c.JSON(http.StatusBadGateway, errorBody(MsgServerError))
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"message": message}
}
