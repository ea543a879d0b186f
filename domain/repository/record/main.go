//go:generate mockgen -source=$GOFILE -destination=${GOFILE}_mock.go -package=$GOPACKAGE

package record

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned when a record id is negative.
var ErrInvalidID = errors.New("record id must be zero or positive")

// ErrNotFound is returned when no record file exists for an id.
var ErrNotFound = errors.New("record file not found")

// Record is a text blob addressed by a non-negative integer id.
// On disk it is the whole contents of <working-directory>/<id>.txt.
type Record struct {
	ID       int
	Contents string
}

// FileName returns the file name holding the record for id, e.g. "5.txt".
func FileName(id int) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return fmt.Sprintf("%d.txt", id), nil
}

// InternalError hides an underlying failure behind a fixed user-facing
// message. The cause stays available for diagnostics via Unwrap.
type InternalError struct {
	UserMessage string
	cause       error
}

func NewInternalError(userMessage string, cause error) *InternalError {
	return &InternalError{
		UserMessage: userMessage,
		cause:       cause,
	}
}

func (e *InternalError) Error() string {
	return e.UserMessage
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// ReadListener receives the contents of a record after it has been read.
// Listeners are invoked synchronously, in subscription order.
type ReadListener func(contents string)

type Repository interface {
	Read(id int) (string, error)
	Write(id int, contents string) error
	Delete(id int) (bool, error)
	// Deprecated: UpdateFile is a legacy alias for Write that additionally
	// notifies read listeners with the written contents.
	UpdateFile(id int, contents string) error
	SubscribeRead(listener ReadListener)
	List() ([]int, error)
}

// Factory creates a Repository bound to a working directory.
type Factory interface {
	Create(workingDirectory string) Repository
}
