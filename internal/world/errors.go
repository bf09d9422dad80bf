package world

import "errors"

var (
	ErrNotFound       = errors.New("world not found")
	ErrDuplicateName  = errors.New("world already exists")
	ErrInvalidName    = errors.New("invalid world name")
	ErrAlreadyBuilder = errors.New("player is already a builder")
	ErrNotBuilder     = errors.New("player is not a builder")
)
