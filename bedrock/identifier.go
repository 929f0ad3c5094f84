// Package bedrock synthesizes Bedrock Edition assets and mapping documents
// for resolved Java pack variants.
package bedrock

import (
	"fmt"
	"strings"

	"git.patyhank.net/falloutBot/packconv/javapack"
)

// Identifier is a generated Bedrock item identifier, unique within one
// mapping document. All per-variant asset ids derive from it.
type Identifier struct {
	Namespace string
	Slug      string
}

func (id Identifier) String() string {
	return id.Namespace + ":" + id.Slug
}

func (id Identifier) Geometry() string {
	return "geometry." + id.Namespace + "." + id.Slug
}

func (id Identifier) Animation() string {
	return "animation." + id.Namespace + "." + id.Slug
}

func (id Identifier) RenderController() string {
	return "controller.render." + id.Namespace + "." + id.Slug
}

func (id Identifier) fileStem() string {
	return id.Namespace + "." + id.Slug
}

// IdentifierTable assigns identifiers for one conversion run. The slug is a
// pure function of the variant's model namespace and name; collisions between
// distinct variants pick up a numeric suffix derived from insertion order,
// which is itself deterministic because scan order is.
type IdentifierTable struct {
	defaultNamespace string
	used             map[string]int
}

func NewIdentifierTable(defaultNamespace string) *IdentifierTable {
	if defaultNamespace == "" {
		defaultNamespace = "custom"
	}
	return &IdentifierTable{defaultNamespace: defaultNamespace, used: map[string]int{}}
}

// Assign returns the identifier for a variant and records it in the per-run
// collision table.
func (t *IdentifierTable) Assign(v *javapack.ResolvedVariant) Identifier {
	ns := v.Model.Namespace
	if ns == "minecraft" {
		ns = t.defaultNamespace
	}
	slug := Slugify(v.Model.Base())
	if slug == "" {
		slug = fmt.Sprintf("%s_cmd%d", v.BaseItem, v.CustomModelData)
	}
	for {
		key := ns + ":" + slug
		n := t.used[key]
		t.used[key] = n + 1
		if n == 0 {
			return Identifier{Namespace: ns, Slug: slug}
		}
		slug = fmt.Sprintf("%s_%d", slug, n+1)
	}
}

// Slugify lowercases a name and keeps [a-z0-9_], folding separators to
// underscores.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ' || r == '/':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
