package service

import "errors"

var (
	ErrCatalogMiss      = errors.New("item not found in catalog")
	ErrInvalidOrderType = errors.New("order type must be pickup or delivery")
)
