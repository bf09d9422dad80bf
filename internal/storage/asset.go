package storage

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	goerrors "github.com/pixil98/go-errors"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")

	identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)
)

const assetVersion = 1

type ValidatingSpec interface {
	Validate() error
}

// Asset is the envelope every record is stored in.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := goerrors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if err := ValidateIdentifier(a.Identifier); err != nil {
		el.Add(err)
	}

	if v := reflect.ValueOf(a.Spec); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		el.Add(fmt.Errorf("spec must be set"))
		return el.Err()
	}
	el.Add(a.Spec.Validate())

	return el.Err()
}

// ValidateIdentifier checks that id is safe to use as a file name or key.
func ValidateIdentifier(id string) error {
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("%w: %q must only contain letters, digits, '_' and '-'", ErrInvalidIdentifier, id)
	}
	return nil
}
