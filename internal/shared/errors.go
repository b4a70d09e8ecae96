package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrNotFound = fmt.Errorf("record not found")
	ErrConflict = fmt.Errorf("record already exists")

	// Catalog errors
	ErrUnknownKind = fmt.Errorf("unknown entity kind")
	ErrPrimaryKey  = fmt.Errorf("could not resolve the primary key")

	// Provider and service errors
	ErrProviderRequest     = fmt.Errorf("provider request failed")
	ErrProviderUnavailable = fmt.Errorf("provider unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
