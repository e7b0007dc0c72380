package cmpr

import "fmt"

// ErrorCode classifies a conversion failure.
type ErrorCode int

const (
	ErrCodeUnsupported ErrorCode = iota + 1
	ErrCodeBadDimensions
	ErrCodeBufferSize
	ErrCodeBadQuality
	ErrCodeBlock
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeUnsupported:
		return "unsupported conversion"
	case ErrCodeBadDimensions:
		return "bad dimensions"
	case ErrCodeBufferSize:
		return "buffer size mismatch"
	case ErrCodeBadQuality:
		return "quality out of range"
	case ErrCodeBlock:
		return "block codec error"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// ConvertError is returned by Convert.
type ConvertError struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *ConvertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cmpr: %s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("cmpr: %s: %s", e.Code, e.Msg)
}

func (e *ConvertError) Unwrap() error { return e.Err }

func newError(code ErrorCode, format string, args ...any) *ConvertError {
	return &ConvertError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
