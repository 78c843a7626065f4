package progress

import "github.com/rotisserie/eris"

// ErrUnknownTopic indicates a ledger operation referencing a topic that is
// absent from the catalog.
var ErrUnknownTopic = eris.New("unknown topic")
