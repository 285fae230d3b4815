package opus

import (
	"errors"
	"fmt"

	opus "gopkg.in/hraban/opus.v2"
)

// libopus status codes, as reported by the encoder.
var (
	ErrBadArg         error = opus.ErrBadArg
	ErrBufferTooSmall error = opus.ErrBufferTooSmall
	ErrInternalError  error = opus.ErrInternalError
	ErrInvalidPacket  error = opus.ErrInvalidPacket
	ErrUnimplemented  error = opus.ErrUnimplemented
	ErrInvalidState   error = opus.ErrInvalidState
	ErrAllocFail      error = opus.ErrAllocFail
)

// ErrUnknownParam is returned when a parameter is looked up by a name
// which is not one of Params().
var ErrUnknownParam = errors.New("unknown encoder parameter")

// ParamError is returned when the encoder rejects a parameter value. Err is
// the status returned by libopus. The parameter keeps its previous value.
type ParamError struct {
	Param Param
	Value int
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%d rejected by encoder: %v", e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
