package fimgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/fimgo/internal/conv"
	"github.com/hupe1980/fimgo/internal/dataset"
	"github.com/hupe1980/fimgo/topk"
)

var (
	// ErrInvalidMinSupport is returned when the support threshold is below 1.
	ErrInvalidMinSupport = errors.New("minimum support must be positive")

	// ErrInvalidWorkers is returned when the worker count is below 1.
	ErrInvalidWorkers = errors.New("worker count must be positive")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = topk.ErrInvalidK

	// ErrInvalidBreadth is returned for a negative breadth.
	ErrInvalidBreadth = errors.New("breadth must not be negative")

	// ErrInvalidGroup is returned when a group id is outside [0, groups).
	ErrInvalidGroup = errors.New("invalid group")

	// ErrCapacity is returned when an id does not fit the encoding chosen
	// for a store. It indicates a bug in width selection.
	ErrCapacity = conv.ErrOverflow

	// ErrInvalidTransaction is returned for a transaction holding a negative
	// item or weight.
	ErrInvalidTransaction = dataset.ErrInvalidTransaction
)

// Stage names the part of a run that failed.
type Stage string

const (
	StageLoad    Stage = "load"
	StageMine    Stage = "mine"
	StageCollect Stage = "collect"
)

// StageError wraps a failure with the stage it happened in.
//
// The original underlying error can be accessed via errors.Unwrap.
type StageError struct {
	Stage Stage
	cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.cause)
}

func (e *StageError) Unwrap() error { return e.cause }

func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, cause: err}
}

// IsStage reports whether err happened in the given stage.
func IsStage(err error, stage Stage) bool {
	var se *StageError
	return errors.As(err, &se) && se.Stage == stage
}
