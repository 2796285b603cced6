package services

import "errors"

// Common service errors. Services classify failures with these sentinels;
// the handler layer translates them into HTTP responses.
var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInvalidCredentials = errors.New("credenciais inválidas ou usuário inativo")
	ErrDuplicate          = errors.New("registro duplicado")
	ErrBadRequest         = errors.New("dados inválidos")
	ErrInvalidFileType    = errors.New("tipo de arquivo não permitido")
	ErrFileTooLarge       = errors.New("arquivo muito grande")
)

// fail wraps a sentinel with a contextual message while keeping errors.Is
// classification intact
func fail(sentinel error, message string) error {
	return &classifiedError{sentinel: sentinel, message: message}
}

type classifiedError struct {
	sentinel error
	message  string
}

func (e *classifiedError) Error() string { return e.message }

func (e *classifiedError) Unwrap() error { return e.sentinel }
