package allocation

import "errors"

var (
	// ErrStoreUnavailable wraps inventory or catalog failures. Units committed
	// before the failure stay committed.
	ErrStoreUnavailable = errors.New("inventory store unavailable")

	// ErrInvalidRequest is returned for a blank employee id or job title.
	ErrInvalidRequest = errors.New("invalid allocation request")

	ErrStoreRequired   = errors.New("inventory store is required")
	ErrCatalogRequired = errors.New("kit catalog is required")
)
