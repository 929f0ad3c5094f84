// Package javapack reads Java Edition resource packs and resolves the custom
// model data overrides they declare.
package javapack

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/exp/slices"
)

// Pack is a read-only Java Edition resource pack, addressed by slash-separated
// entry paths relative to the pack root. The backing fs.FS may be a directory,
// a zip container or an in-memory map; the pack never mutates it.
type Pack struct {
	name string
	fsys fs.FS
}

func New(name string, fsys fs.FS) *Pack {
	return &Pack{name: name, fsys: fsys}
}

func (p *Pack) Name() string {
	return p.name
}

// Entry returns the raw bytes of the entry at the given pack-relative path.
func (p *Pack) Entry(name string) ([]byte, error) {
	return fs.ReadFile(p.fsys, name)
}

// Has reports whether an entry exists at the given path.
func (p *Pack) Has(name string) bool {
	_, err := fs.Stat(p.fsys, name)
	return err == nil
}

// Namespaces lists the namespaces under assets/, sorted. A pack without an
// assets directory is not a usable resource pack.
func (p *Pack) Namespaces() ([]string, error) {
	entries, err := fs.ReadDir(p.fsys, "assets")
	if err != nil {
		return nil, fmt.Errorf("pack %s has no readable assets directory: %w", p.name, err)
	}
	var namespaces []string
	for _, e := range entries {
		if e.IsDir() {
			namespaces = append(namespaces, e.Name())
		}
	}
	slices.Sort(namespaces)
	return namespaces, nil
}

// ItemModels lists the item model entries of one namespace, sorted by path.
func (p *Pack) ItemModels(namespace string) []string {
	matches, err := fs.Glob(p.fsys, "assets/"+namespace+"/models/item/*.json")
	if err != nil {
		return nil
	}
	return matches
}

// Meta is the pack metadata taken from pack.mcmeta.
type Meta struct {
	Name        string
	Description string
	Format      int
}

// Meta reads pack.mcmeta, falling back to the pack name and defaults when the
// file is absent or unreadable. The name is always filename-safe.
func (p *Pack) Meta() Meta {
	meta := Meta{Name: safeName(p.name), Description: "Converted from Java Edition", Format: 6}
	if meta.Name == "" {
		meta.Name = "pack"
	}
	data, err := p.Entry("pack.mcmeta")
	if err != nil {
		return meta
	}
	var raw struct {
		Pack struct {
			// Description may be a plain string or a text component object.
			Description json.RawMessage `json:"description"`
			PackFormat  int             `json:"pack_format"`
		} `json:"pack"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return meta
	}
	if raw.Pack.PackFormat > 0 {
		meta.Format = raw.Pack.PackFormat
	}
	var desc string
	if json.Unmarshal(raw.Pack.Description, &desc) == nil && desc != "" {
		meta.Description = desc
	}
	return meta
}

// safeName keeps the filename-safe characters of a pack name.
func safeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
