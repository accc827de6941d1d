package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("server error")
	ErrBadPayload   = errors.New("bad payload")
)

func errFromStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code >= 500:
		return fmt.Errorf("status %d: %w", code, ErrServer)
	case code >= 400:
		return fmt.Errorf("unexpected status %d", code)
	default:
		return nil
	}
}
