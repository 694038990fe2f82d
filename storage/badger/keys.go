package badger

import (
	"fmt"

	"github.com/quester-io/docquery/core"
)

// Key prefix for cached embedding vectors
const vectorPrefix = "vec"

// makeVectorKey generates a cache key for a chunk's embedding under a model.
// Format: prefix:model:contentHash. The model is part of the key so switching
// embedding models never serves stale vectors.
func makeVectorKey(model string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", vectorPrefix, model, id))
}
