package domain

import (
	"strconv"
)

const (
	MinScore = 1
	MaxScore = 10
)

// ErrorKind tells which stage of a rating request failed.
type ErrorKind int

const (
	ImageProcessing ErrorKind = iota + 1
	Generation
)

func (k ErrorKind) String() string {
	switch k {
	case ImageProcessing:
		return "image processing"
	case Generation:
		return "generation"
	default:
		return "unknown"
	}
}

func (k ErrorKind) prefix() string {
	switch k {
	case ImageProcessing:
		return "Error processing image: "
	case Generation:
		return "Error generating content: "
	default:
		return "Error: "
	}
}

// RatingError is returned by a failed rating request. Its message keeps the
// "Error processing image: " / "Error generating content: " prefixes callers
// match on.
type RatingError struct {
	Kind ErrorKind
	Err  error
}

func NewImageError(err error) *RatingError {
	return &RatingError{Kind: ImageProcessing, Err: err}
}

func NewGenerationError(err error) *RatingError {
	return &RatingError{Kind: Generation, Err: err}
}

func (e *RatingError) Error() string {
	if e.Err == nil {
		return e.Kind.prefix() + e.Kind.String() + " failed"
	}
	return e.Kind.prefix() + e.Err.Error()
}

func (e *RatingError) Unwrap() error {
	return e.Err
}

// Rating is the trimmed reply of the model for one image.
type Rating struct {
	Text      string
	Model     string
	RequestID string
}

// Score parses Text as a whole number between MinScore and MaxScore. The
// reply is never altered; ok is false when it is anything else.
func (r Rating) Score() (score int, ok bool) {
	n, err := strconv.Atoi(r.Text)
	if err != nil || n < MinScore || n > MaxScore {
		return 0, false
	}
	return n, true
}
