package cache

import "errors"

// ErrCorrupt is reported by [Compressed] when an entry fails to decode. The
// entry is deleted and the lookup counts as a miss.
var ErrCorrupt = errors.New("corrupt cache entry")
