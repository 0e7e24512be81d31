package services

import "errors"

// sentinel errors ที่ handler ใช้ map เป็น HTTP status (wrap ด้วย fmt.Errorf("%w: ..."))
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
	ErrUnauthorized = errors.New("unauthorized")
)
