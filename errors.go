package anima

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNoAgentSelected indicates a send was attempted with no agent ID.
	ErrNoAgentSelected = errors.New("no agent selected")

	// ErrExchangeInFlight indicates a send was attempted while a previous
	// exchange was still streaming.
	ErrExchangeInFlight = errors.New("an exchange is already in flight")

	// ErrUnavailable indicates the client could not be configured and all
	// server operations are disabled.
	ErrUnavailable = errors.New("client is not available: check configuration")

	// ErrFinalized indicates an operation on an already-finalized exchange.
	ErrFinalized = errors.New("exchange already finalized")
)
