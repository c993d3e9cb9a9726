// Package apierror define el único error que ve la capa de presentación cuando
// falla una llamada al backend Impilo: mensaje, status HTTP y cuerpo parseado.
package apierror

import "errors"

// Status especiales además de los HTTP reales.
const (
	StatusNetwork = 0   // fallo de red o error inesperado
	StatusTimeout = 408 // timeout del lado del cliente
)

// UnexpectedMessage mensaje usado al normalizar errores que no vienen del cliente REST.
const UnexpectedMessage = "An unexpected error occurred"

// Error error de la API con status HTTP y cuerpo de respuesta (JSON decodificado o texto).
type Error struct {
	Message string
	Status  int
	Data    any
	cause   error
}

// New construye un Error.
func New(message string, status int, data any) *Error {
	return &Error{Message: message, Status: status, Data: data}
}

// Wrap construye un Error conservando la causa para errors.Is/As.
func Wrap(message string, status int, cause error) *Error {
	return &Error{Message: message, Status: status, cause: cause}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Timeout indica si la petición fue abortada por el timeout del cliente.
func (e *Error) Timeout() bool { return e.Status == StatusTimeout && e.Data == nil }

// As devuelve el *Error contenido en err, o envuelve cualquier otro error como
// error inesperado (status 0). nil devuelve nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Wrap(UnexpectedMessage, StatusNetwork, err)
}
