package hr

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("empleado no encontrado")

	// ErrDuplicateDocument is returned when the document number is taken
	ErrDuplicateDocument = errors.New("ya existe un empleado con ese documento")

	// ErrDuplicateEmail is returned when the email is taken
	ErrDuplicateEmail = errors.New("ya existe un empleado con ese email")

	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = errors.New("datos inválidos")

	// ErrInvalidCredentials is returned on failed logins
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
