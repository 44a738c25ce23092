package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionClosed    = errors.New("session closed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConnectionExists = errors.New("connection already exists")
)
