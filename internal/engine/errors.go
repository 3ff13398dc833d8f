package engine

import "errors"

var (
	// ErrInvalidOrderAmount rejects orders with amount <= 0.
	ErrInvalidOrderAmount = errors.New("order amount must be greater than zero")
	// ErrInvalidOrderPrice rejects limit and stop orders with price <= 0.
	ErrInvalidOrderPrice = errors.New("order price must be greater than zero")
	// ErrInvalidLeverage rejects leverage outside the allowed discrete set.
	ErrInvalidLeverage = errors.New("leverage not in allowed set")
	// ErrInsufficientBalance rejects orders whose value times leverage
	// exceeds the available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrPositionNotFound is returned when closing an unknown position.
	ErrPositionNotFound = errors.New("position not found")
)
