package pack

import "errors"

var (
	ErrPackNotFound    = errors.New("subscription pack not found")
	ErrPackDeleted     = errors.New("subscription pack is deleted")
	ErrSKUExists       = errors.New("pack sku already exists")
	ErrInvalidName     = errors.New("invalid pack name")
	ErrInvalidSKU      = errors.New("invalid pack sku")
	ErrInvalidPrice    = errors.New("invalid pack price")
	ErrInvalidDesc     = errors.New("invalid pack description")
	ErrInvalidValidity = errors.New("validity months must be between 1 and 12")
)
