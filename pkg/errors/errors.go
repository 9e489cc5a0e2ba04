// Package errors defines the error kinds returned by the light-client core.
//
// Every failure caused by malformed input is one of these kinds, wrapped with
// context naming the offending field. Callers match them with errors.Is or
// errorsmod.IsOf.
package errors

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the codespace shared by all light-client core errors.
const Codespace = "lite"

var (
	// ErrParse is returned for malformed hex, base64 or byte lengths.
	ErrParse = errorsmod.Register(Codespace, 2, "parse error")

	// ErrEncoding is returned when a field cannot be canonically encoded.
	ErrEncoding = errorsmod.Register(Codespace, 3, "encoding error")

	// ErrOverflow is returned when a voting power sum exceeds uint64.
	ErrOverflow = errorsmod.Register(Codespace, 4, "voting power overflow")

	// ErrUnsupportedKey is returned when no verifier is registered for a key type.
	ErrUnsupportedKey = errorsmod.Register(Codespace, 5, "unsupported key type")

	// ErrDuplicateValidator is returned when two validators share an address.
	ErrDuplicateValidator = errorsmod.Register(Codespace, 6, "duplicate validator")

	// ErrInvalidGenesis is returned when a genesis document fails validation.
	ErrInvalidGenesis = errorsmod.Register(Codespace, 7, "invalid genesis")

	// ErrValidatorNotFound is returned when an update removes an unknown validator.
	ErrValidatorNotFound = errorsmod.Register(Codespace, 8, "validator not found")

	// ErrValidation is returned when a well-formed value breaks a stateless rule.
	ErrValidation = errorsmod.Register(Codespace, 9, "validation failed")
)
