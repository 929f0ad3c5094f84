package javapack

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		in      string
		current string
		want    Reference
	}{
		{"itemsadder:item/ruby_sword", "minecraft", Reference{"itemsadder", "item/ruby_sword"}},
		{"item/ruby_sword", "itemsadder", Reference{"itemsadder", "item/ruby_sword"}},
		{"item/stick", "", Reference{"minecraft", "item/stick"}},
		{"builtin/generated", "minecraft", Reference{"minecraft", "builtin/generated"}},
	}
	for _, tt := range tests {
		got, err := ParseReference(tt.in, tt.current)
		if err != nil {
			t.Fatalf("ParseReference(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseReference(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseReference_Malformed(t *testing.T) {
	for _, in := range []string{"", "Bad:Item", "ns:a b", "a:b:c", "ns:"} {
		_, err := ParseReference(in, "minecraft")
		if err == nil {
			t.Fatalf("ParseReference(%q): expected error", in)
		}
		var malformed *MalformedReferenceError
		if !errors.As(err, &malformed) {
			t.Fatalf("ParseReference(%q): got %T, want MalformedReferenceError", in, err)
		}
	}
}

func TestNamespaceResolver_MissingEntry(t *testing.T) {
	pack := New("test", fstest.MapFS{})
	resolver := NewNamespaceResolver(pack)

	_, err := resolver.ModelEntry(Reference{"ns", "item/ghost"})
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("got %v, want ErrUnresolvedReference", err)
	}
	var unres *UnresolvedReferenceError
	if !errors.As(err, &unres) {
		t.Fatalf("got %T, want UnresolvedReferenceError", err)
	}
	if unres.Entry != "assets/ns/models/item/ghost.json" {
		t.Fatalf("unexpected entry path %s", unres.Entry)
	}
}

func TestNamespaceResolver_Resolves(t *testing.T) {
	pack := New("test", fstest.MapFS{
		"assets/ns/models/item/sword.json": {Data: []byte(`{"textures":{}}`)},
	})
	data, err := NewNamespaceResolver(pack).ModelEntry(Reference{"ns", "item/sword"})
	if err != nil {
		t.Fatalf("expected entry, got %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty entry")
	}
}
