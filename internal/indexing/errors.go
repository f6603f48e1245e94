package indexing

import (
	"errors"
	"fmt"
)

var (
	ErrSyncDisabled      = errors.New("indexing: product sync disabled for scope")
	ErrUnknownAction     = errors.New("indexing: unknown sync action")
	ErrUnknownEntityType = errors.New("indexing: unknown target entity type")
	ErrStoreNotFound     = errors.New("indexing: store not found for scope")
	ErrEntityNotFound    = errors.New("indexing: indexing entity not found")
)

// InvalidRecordDataTypeError reports a record builder argument that does not
// carry the extensible entity capability. Role names the offending argument.
type InvalidRecordDataTypeError struct {
	Role string
}

func (e *InvalidRecordDataTypeError) Error() string {
	return fmt.Sprintf("invalid data type for %s in creation of indexing record: ExtensibleEntity capability required", e.Role)
}

// InvalidEventKeyError reports an unknown key in responder input data. The
// event is suppressed, never dispatched.
type InvalidEventKeyError struct {
	Type string
	Key  string
}

func (e *InvalidEventKeyError) Error() string {
	return fmt.Sprintf("Invalid key provided in creation of %s. Key %s", e.Type, e.Key)
}
