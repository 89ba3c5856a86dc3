package menus

import (
	"errors"
	"fmt"
)

// ErrUnresolvableReference indicates menu metadata that conflicts across
// documents. Resolution degrades to last-write-wins; the build continues.
var ErrUnresolvableReference = errors.New("menus: unresolvable reference")

// ConflictError records two documents registering the same entry name in the
// same menu with different weights.
type ConflictError struct {
	Menu           string
	Name           string
	ExistingWeight int
	ExistingPath   string
	IncomingWeight int
	IncomingPath   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: menu %q entry %q declared with weight %d by %s and weight %d by %s",
		ErrUnresolvableReference.Error(), e.Menu, e.Name,
		e.ExistingWeight, e.ExistingPath, e.IncomingWeight, e.IncomingPath)
}

func (e *ConflictError) Unwrap() error {
	return ErrUnresolvableReference
}
