package smsdev

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNumber is returned by Send when local validation rejects the
	// recipient. No request is made in that case.
	ErrInvalidNumber = errors.New("smsdev: invalid recipient number")

	// ErrUnexpectedResponse is returned when the gateway body is not a JSON
	// object or array.
	ErrUnexpectedResponse = errors.New("smsdev: unexpected response")
)

// APIError is a well-formed gateway response whose situacao is not "OK".
type APIError struct {
	Situacao  string
	Codigo    string
	Descricao string
}

func (e *APIError) Error() string {
	if e.Situacao == "" {
		return "smsdev: response without situacao"
	}
	if e.Codigo != "" {
		return fmt.Sprintf("smsdev: %s %s: %s", e.Situacao, e.Codigo, e.Descricao)
	}
	return fmt.Sprintf("smsdev: %s: %s", e.Situacao, e.Descricao)
}

// apiErrorFrom builds an APIError from a decoded object, or returns nil when
// the object reports success.
func apiErrorFrom(obj map[string]any) *APIError {
	situacao := stringField(obj, "situacao")
	if situacao == statusOK {
		return nil
	}
	return &APIError{
		Situacao:  situacao,
		Codigo:    stringField(obj, "codigo"),
		Descricao: stringField(obj, "descricao"),
	}
}
