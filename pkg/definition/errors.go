package definition

import "errors"

var (
	ErrEmptyDocument      = errors.New("definition: document has no sections")
	ErrUnsupportedFormat  = errors.New("definition: unsupported file format")
	ErrUnknownType        = errors.New("definition: unknown field type")
	ErrUnknownRule        = errors.New("definition: unknown rule kind")
	ErrInvalidParam       = errors.New("definition: invalid rule parameter")
	ErrUnknownReference   = errors.New("definition: unknown field reference")
	ErrDuplicateField     = errors.New("definition: duplicate field id")
	ErrInvalidDerive      = errors.New("definition: invalid derivation")
	ErrInvalidDefault     = errors.New("definition: invalid default value")
	ErrOperationNotFound  = errors.New("definition: operation not found")
	ErrMissingRequestBody = errors.New("definition: operation has no request body schema")
)
