package javapack

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CyclicChainError is a model parent chain that revisits a node. It fails the
// single variant being resolved, never the whole pack.
type CyclicChainError struct {
	Chain []Reference
}

func (e *CyclicChainError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, ref := range e.Chain {
		parts[i] = ref.String()
	}
	return "cyclic model chain " + strings.Join(parts, " -> ")
}

// ResolvedModel is the merged view of a model node and its ancestors: texture
// variables and display transforms with child-before-ancestor precedence, and
// the custom geometry of the most specific node that declares any.
type ResolvedModel struct {
	Root        Reference
	Textures    map[string]string
	Display     map[string]DisplayTransform
	Elements    []Element
	TextureSize [2]int
}

// ModelGraphResolver walks model parent chains.
type ModelGraphResolver struct {
	ns *NamespaceResolver
}

func NewModelGraphResolver(pack *Pack) *ModelGraphResolver {
	return &ModelGraphResolver{ns: NewNamespaceResolver(pack)}
}

// builtinParent reports whether a parent reference is a built-in root that
// terminates the walk without requiring a pack entry.
func builtinParent(ref Reference) bool {
	if ref.Namespace != "minecraft" {
		return false
	}
	if strings.HasPrefix(ref.Path, "builtin/") {
		return true
	}
	switch ref.Path {
	case "item/generated", "item/handheld", "item/handheld_rod", "item/handheld_mace":
		return true
	}
	return false
}

// Resolve walks the parent chain from ref to a terminal node. The walk is
// iterative over the pack's adjacency; a visited set turns a revisit into a
// CyclicChainError carrying the full chain. A missing parent surfaces as
// UnresolvedReferenceError.
func (r *ModelGraphResolver) Resolve(ref Reference) (*ResolvedModel, error) {
	merged := &ResolvedModel{
		Textures:    map[string]string{},
		Display:     map[string]DisplayTransform{},
		TextureSize: [2]int{16, 16},
	}
	visited := map[Reference]bool{}
	var chain []Reference
	cur := ref
	for {
		if visited[cur] {
			return nil, &CyclicChainError{Chain: append(chain, cur)}
		}
		visited[cur] = true
		chain = append(chain, cur)

		data, err := r.ns.ModelEntry(cur)
		if err != nil {
			return nil, err
		}
		node, err := DecodeModel(cur, data)
		if err != nil {
			return nil, err
		}

		// Child-before-ancestor: a variable or context already merged from a
		// more specific node is never overwritten by an ancestor.
		for name, tex := range node.Textures {
			if _, ok := merged.Textures[name]; !ok {
				merged.Textures[name] = tex
			}
		}
		for ctx, tr := range node.Display {
			if _, ok := merged.Display[ctx]; !ok {
				merged.Display[ctx] = tr
			}
		}
		if merged.Elements == nil && len(node.Elements) > 0 {
			merged.Elements = node.Elements
		}
		if len(chain) == 1 {
			merged.TextureSize = node.TextureSize
		}

		if node.Parent == nil {
			merged.Root = cur
			return merged, nil
		}
		if builtinParent(*node.Parent) {
			merged.Root = *node.Parent
			return merged, nil
		}
		cur = *node.Parent
	}
}

// PrimaryTexture picks the icon texture: layer0, then 0, then the first
// variable in sorted order. Variable indirection (#name) is followed through
// the merged map, bounded by the map size.
func (m *ResolvedModel) PrimaryTexture() (string, error) {
	var pick string
	switch {
	case m.Textures["layer0"] != "":
		pick = m.Textures["layer0"]
	case m.Textures["0"] != "":
		pick = m.Textures["0"]
	default:
		names := maps.Keys(m.Textures)
		if len(names) == 0 {
			return "", fmt.Errorf("model %s declares no textures", m.Root)
		}
		slices.Sort(names)
		pick = m.Textures[names[0]]
	}
	for i := 0; i <= len(m.Textures); i++ {
		if !strings.HasPrefix(pick, "#") {
			return pick, nil
		}
		next, ok := m.Textures[strings.TrimPrefix(pick, "#")]
		if !ok {
			return "", fmt.Errorf("texture variable %s is undefined", pick)
		}
		pick = next
	}
	return "", fmt.Errorf("texture variable indirection does not terminate")
}
