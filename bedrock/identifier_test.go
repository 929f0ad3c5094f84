package bedrock

import (
	"testing"

	"git.patyhank.net/falloutBot/packconv/javapack"
)

func variant(ns, model, baseItem string, cmd int) *javapack.ResolvedVariant {
	return &javapack.ResolvedVariant{
		BaseItem:        baseItem,
		CustomModelData: cmd,
		Model:           javapack.Reference{Namespace: ns, Path: model},
	}
}

func TestIdentifierTable_Deterministic(t *testing.T) {
	a := NewIdentifierTable("custom")
	b := NewIdentifierTable("custom")
	v := variant("itemsadder", "item/ruby_sword", "diamond_sword", 1001)

	if a.Assign(v) != b.Assign(v) {
		t.Fatal("fresh tables must assign identical identifiers")
	}
}

func TestIdentifierTable_MinecraftNamespaceReplaced(t *testing.T) {
	table := NewIdentifierTable("custom")
	id := table.Assign(variant("minecraft", "item/special", "stick", 3))
	if id.Namespace != "custom" {
		t.Fatalf("namespace %q, want custom", id.Namespace)
	}
	if id.String() != "custom:special" {
		t.Fatalf("identifier %s", id)
	}
}

func TestIdentifierTable_CollisionSuffix(t *testing.T) {
	table := NewIdentifierTable("custom")
	first := table.Assign(variant("ns", "item/sword", "diamond_sword", 1))
	second := table.Assign(variant("ns", "other/sword", "diamond_sword", 2))

	if first.Slug != "sword" {
		t.Fatalf("first slug %q", first.Slug)
	}
	if second.Slug != "sword_2" {
		t.Fatalf("second slug %q, want insertion-order suffix", second.Slug)
	}
}

func TestIdentifier_DerivedNames(t *testing.T) {
	id := Identifier{Namespace: "ns", Slug: "custom_sword"}
	if id.Geometry() != "geometry.ns.custom_sword" {
		t.Fatalf("geometry %s", id.Geometry())
	}
	if id.Animation() != "animation.ns.custom_sword" {
		t.Fatalf("animation %s", id.Animation())
	}
	if id.RenderController() != "controller.render.ns.custom_sword" {
		t.Fatalf("render controller %s", id.RenderController())
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Ruby Sword":    "ruby_sword",
		"ruby-sword.v2": "ruby_sword_v2",
		"__trim__":      "trim",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
