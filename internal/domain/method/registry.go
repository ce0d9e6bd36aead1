package method

import "errors"

var ErrMethodNotFound = errors.New("payment method not found")

// Registry resolves method identifiers to their static profiles. Pure lookup,
// no side effects; the only failure mode is an unknown method.
type Registry interface {
	Profile(Method) (MethodProfile, error)
	Methods() []Method
}
