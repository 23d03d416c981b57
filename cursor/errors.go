package cursor

import (
	"errors"
	"fmt"

	"github.com/lumendb/lumen-go/ecode"
)

// ErrMissingDataSource reports a cursor whose backing collection or
// table handle is absent. This is a defensive check; cursors built
// through a Collection or Table always carry their source.
var ErrMissingDataSource = errors.New(ecode.NotExist("cursor data source"))

// StateError reports an operation invoked in a cursor state that does
// not admit it: reconfiguring a non-idle cursor, or requiring liveness
// of a closed one.
type StateError struct {
	State  State
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s (cursor state: %s)", e.Reason, e.State)
}

func errNotIdle(s State) error {
	return &StateError{State: s, Reason: "cursor is not idle anymore"}
}

func errNotAlive(s State) error {
	return &StateError{State: s, Reason: "cursor is " + ecode.Closed()}
}
