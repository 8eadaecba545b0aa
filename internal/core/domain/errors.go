package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedMedia  = errors.New("unsupported media type")
	ErrItemNotFound      = errors.New("clothing item not found")
	ErrOutfitNotFound    = errors.New("outfit not found")
	ErrItemReferenced    = errors.New("clothing item referenced by saved outfit")
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrNoViableOutfit    = errors.New("no viable outfit")
	ErrCompositionFailed = errors.New("composition failed")
	ErrTemporary         = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
