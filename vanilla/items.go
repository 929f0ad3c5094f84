// Package vanilla exposes the vanilla item registry for base item id checks.
package vanilla

import (
	"strings"
	"sync"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/world"
)

var registryOnce sync.Once

// finalise forces dragonfly's item and block registries to be populated and
// sealed before any lookup happens.
func finalise() {
	_ = item.Arrow{}
	_ = block.Air{}
	_ = world.New()
}

// KnownItem reports whether name is a vanilla item id. Bare names are
// namespaced with minecraft:.
func KnownItem(name string) bool {
	registryOnce.Do(finalise)
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	_, ok := world.ItemByName(name, 0)
	return ok
}
