package javapack

import (
	"errors"
	"fmt"
	"path"

	"github.com/dlclark/regexp2"
)

// ErrUnresolvedReference marks a well-formed reference to an entry the pack
// does not contain. Callers treat it as a missing external dependency, not a
// fatal error.
var ErrUnresolvedReference = errors.New("unresolved reference")

// MalformedReferenceError is a reference string that does not follow the
// namespace:path syntax. Inside an override declaration this is a syntax
// error of the declaration itself and fails the pack.
type MalformedReferenceError struct {
	Ref string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed reference %q", e.Ref)
}

// UnresolvedReferenceError carries the reference and the concrete entry path
// that was tried.
type UnresolvedReferenceError struct {
	Ref   Reference
	Entry string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("reference %s resolves to missing entry %s", e.Ref, e.Entry)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// Reference is a namespaced asset location, e.g. "itemsadder:item/ruby_sword".
type Reference struct {
	Namespace string
	Path      string
}

var refPattern = regexp2.MustCompile(`^(?:([a-z0-9_.\-]+):)?([a-z0-9_.\-/]+)$`, regexp2.None)

// ParseReference parses a bare or namespaced reference string. Bare references
// resolve against the current namespace; namespaced ones ignore it.
func ParseReference(s, current string) (Reference, error) {
	m, err := refPattern.FindStringMatch(s)
	if err != nil || m == nil {
		return Reference{}, &MalformedReferenceError{Ref: s}
	}
	ns := m.GroupByNumber(1).String()
	if ns == "" {
		ns = current
	}
	if ns == "" {
		ns = "minecraft"
	}
	return Reference{Namespace: ns, Path: m.GroupByNumber(2).String()}, nil
}

func (r Reference) String() string {
	return r.Namespace + ":" + r.Path
}

// Base returns the last path segment of the reference.
func (r Reference) Base() string {
	return path.Base(r.Path)
}

// NamespaceResolver resolves references to concrete pack entries.
type NamespaceResolver struct {
	pack *Pack
}

func NewNamespaceResolver(pack *Pack) *NamespaceResolver {
	return &NamespaceResolver{pack: pack}
}

// ModelEntry returns the bytes of the model file a reference points at.
func (r *NamespaceResolver) ModelEntry(ref Reference) ([]byte, error) {
	entry := fmt.Sprintf("assets/%s/models/%s.json", ref.Namespace, ref.Path)
	data, err := r.pack.Entry(entry)
	if err != nil {
		return nil, &UnresolvedReferenceError{Ref: ref, Entry: entry}
	}
	return data, nil
}

// TextureEntry returns the bytes of the texture a reference points at.
func (r *NamespaceResolver) TextureEntry(ref Reference) ([]byte, error) {
	entry := TexturePath(ref)
	data, err := r.pack.Entry(entry)
	if err != nil {
		return nil, &UnresolvedReferenceError{Ref: ref, Entry: entry}
	}
	return data, nil
}

// TexturePath is the pack entry path of a texture reference.
func TexturePath(ref Reference) string {
	return fmt.Sprintf("assets/%s/textures/%s.png", ref.Namespace, ref.Path)
}
