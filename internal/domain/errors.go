package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound                    = errors.New("post not found")
	ErrPostCommentNotFound             = errors.New("post comment not found")
	ErrUnauthorizedPostDeleting        = errors.New("user must be the post owner to delete it")
	ErrUnauthorizedPostCommentDeleting = errors.New("user must be the comment owner to delete it")
	ErrPostDislikeUser                 = errors.New("user has not liked the post")
	ErrPostNotStored                   = errors.New("post was not stored")
)

// OpError wraps a storage failure with the operation and target that hit it.
// It keeps only the failure's description: callers never see (and cannot
// errors.As into) the driver's native error types.
type OpError struct {
	Op     string
	Target string
	Desc   string
}

func (e *OpError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Desc)
	}
	return fmt.Sprintf("%s (%s): %s", e.Op, e.Target, e.Desc)
}

// NewOpError builds an OpError from the underlying failure.
func NewOpError(op, target string, err error) *OpError {
	return &OpError{Op: op, Target: target, Desc: err.Error()}
}
