package bedrock

import (
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/resource"
)

// packUUIDSpace namespaces the name-based pack UUIDs. Fixed so reruns on the
// same input produce byte-identical manifests.
var packUUIDSpace = uuid.MustParse("9f0cbc5e-4b2a-4a8c-a7de-8a6f54c8d1e3")

// BuildPackManifest builds the Bedrock resource pack manifest. Header and
// module UUIDs are derived from the pack name instead of drawn randomly, so
// conversion stays idempotent.
func BuildPackManifest(name, description string, minEngine [3]int) *resource.Manifest {
	return &resource.Manifest{
		FormatVersion: 2,
		Header: resource.Header{
			Name:               name,
			Description:        description,
			UUID:               uuid.NewSHA1(packUUIDSpace, []byte("header:"+name)),
			Version:            [3]int{1, 0, 0},
			MinimumGameVersion: minEngine,
		},
		Modules: []resource.Module{{
			UUID:    uuid.NewSHA1(packUUIDSpace, []byte("module:"+name)).String(),
			Type:    "resources",
			Version: [3]int{1, 0, 0},
		}},
	}
}
