package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// ErrorKind clasifica los errores del libro. Conjunto cerrado.
type ErrorKind int

const (
	KindFetch      ErrorKind = iota + 1 // lectura fallida
	KindWrite                           // upsert fallido
	KindCascade                         // limpieza de filas dependientes antes de un borrado
	KindDelete                          // borrado con 0 filas afectadas o denegado (RLS)
	KindValidation                      // rechazado localmente, nunca llega al gateway
)

func (k ErrorKind) String() string {
	switch k {
	case KindFetch:
		return "FETCH_ERROR"
	case KindWrite:
		return "WRITE_ERROR"
	case KindCascade:
		return "CASCADE_ERROR"
	case KindDelete:
		return "DELETE_ERROR"
	case KindValidation:
		return "VALIDATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// LedgerError error estructurado: el mensaje se muestra tal cual al operador,
// Code es opcional (código del driver, p.ej. 42501, o código propio).
type LedgerError struct {
	Kind    ErrorKind
	Message string
	Code    string
	Err     error
}

func (e *LedgerError) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Code != "" {
		msg += " (código: " + e.Code + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LedgerError) Unwrap() error { return e.Err }

// Is compara por Kind, así errors.Is(err, domain.ErrDelete) funciona con cualquier mensaje.
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// Centinelas por tipo, para usar con errors.Is.
var (
	ErrFetch      = &LedgerError{Kind: KindFetch}
	ErrWrite      = &LedgerError{Kind: KindWrite}
	ErrCascade    = &LedgerError{Kind: KindCascade}
	ErrDelete     = &LedgerError{Kind: KindDelete}
	ErrValidation = &LedgerError{Kind: KindValidation}
)

// Códigos propios.
const (
	CodeNoRowsAffected         = "NO_ROWS_AFFECTED"
	CodeProtectedUser          = "PROTECTED_USER"
	CodePhraseMismatch         = "PHRASE_MISMATCH"
	CodeNoEligibleHours        = "NO_ELIGIBLE_HOURS"
	CodeTipsAlreadyDistributed = "TIPS_ALREADY_DISTRIBUTED"
)

func FetchError(msg, code string, err error) error {
	return &LedgerError{Kind: KindFetch, Message: msg, Code: code, Err: err}
}

func WriteError(msg, code string, err error) error {
	return &LedgerError{Kind: KindWrite, Message: msg, Code: code, Err: err}
}

func CascadeError(msg, code string, err error) error {
	return &LedgerError{Kind: KindCascade, Message: msg, Code: code, Err: err}
}

func DeleteError(msg, code string, err error) error {
	return &LedgerError{Kind: KindDelete, Message: msg, Code: code, Err: err}
}

// Validation construye un error de validación local.
func Validation(code, format string, args ...any) error {
	return &LedgerError{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Code: code}
}

// AsLedgerError extrae el LedgerError de la cadena, si lo hay.
func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
