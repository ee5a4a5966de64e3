// Package errors provides structured error handling with machine-readable codes.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game configuration errors
	CodeInvalidConfig      Code = "GAME_INVALID_CONFIG"
	CodeAlreadyInitialized Code = "GAME_ALREADY_INITIALIZED"
	CodeGameNotFound       Code = "GAME_NOT_FOUND"

	// Player errors
	CodeDuplicatePlayer          Code = "PLAYER_DUPLICATE"
	CodePlayerDefeated           Code = "PLAYER_DEFEATED"
	CodeInsufficientActionPoints Code = "PLAYER_INSUFFICIENT_ACTION_POINTS"
	CodeCapacityExceeded         Code = "PLAYER_INVENTORY_CAPACITY_EXCEEDED"

	// Monster errors
	CodeMonsterDead Code = "MONSTER_DEAD"

	// Storage errors
	CodeNotFound               Code = "NOT_FOUND"
	CodeConcurrentModification Code = "CONCURRENT_MODIFICATION"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidConfig:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeMonsterDead,
		CodePlayerDefeated,
		CodeInsufficientActionPoints,
		CodeCapacityExceeded:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeGameNotFound:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeAlreadyInitialized,
		CodeDuplicatePlayer:
		return codes.AlreadyExists

	// Aborted - optimistic concurrency conflict, safe to retry
	case CodeConcurrentModification:
		return codes.Aborted

	default:
		return codes.Internal
	}
}

// Retryable reports whether a blind retry of the same call can succeed.
// Only optimistic-concurrency conflicts qualify; every other code requires
// caller-side correction or is permanent for that call.
func (c Code) Retryable() bool {
	return c == CodeConcurrentModification
}
