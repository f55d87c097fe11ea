package domain

import "fmt"

// BuildError is the base type for §7's build-time errors: problems in a
// TriviaDef's create_* constructor that would make every later generation
// call against it guaranteed to fail.
type BuildError struct {
	Kind    string
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BuildError) Unwrap() error { return e.Cause }

func NewInvalidDeckIDError(deckID uint64) *BuildError {
	return &BuildError{Kind: "InvalidDeckId", Message: fmt.Sprintf("no deck with id %d", deckID)}
}

func NewInvalidTagNameError(name string) *BuildError {
	return &BuildError{Kind: "InvalidTagName", Message: fmt.Sprintf("no tag-def named %q", name)}
}

func NewInvalidPairingNameError(name string) *BuildError {
	return &BuildError{Kind: "InvalidPairingName", Message: fmt.Sprintf("no pairing named %q", name)}
}

func NewTinylangSyntaxError(source, msg string) *BuildError {
	return &BuildError{Kind: "TinylangSyntaxError", Message: fmt.Sprintf("%s (in %q)", msg, source)}
}

func NewTinylangTypeError(source, msg string) *BuildError {
	return &BuildError{Kind: "TinylangTypeError", Message: fmt.Sprintf("%s (in %q)", msg, source)}
}

func NewInvalidParamsError(msg string) *BuildError {
	return &BuildError{Kind: "InvalidParams", Message: msg}
}

// GenerationError is the base type for §7's generation-time errors: the only
// two failures a validated TriviaDef can produce at query time.
type GenerationError struct {
	Kind    string
	Message string
}

func (e *GenerationError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// NewNotEnoughDataError reports that a selector could not produce k valid items.
func NewNotEnoughDataError(k uint8) *GenerationError {
	return &GenerationError{Kind: "NotEnoughData", Message: fmt.Sprintf("needed %d valid items", k)}
}

// ErrNotPlural reports a variant that requires exactly one true answer but
// was configured with min_true/max_true other than 1.
var ErrNotPlural = &GenerationError{Kind: "NotPlural", Message: "variant requires exactly one true answer"}

// IsNotEnoughData reports whether err is a NotEnoughData generation error.
func IsNotEnoughData(err error) bool {
	ge, ok := err.(*GenerationError)
	return ok && ge.Kind == "NotEnoughData"
}
