package bedrock

import (
	"strings"
	"testing"
)

func entrySet(slug, icon string) *AssetSet {
	return &AssetSet{Identifier: Identifier{Namespace: "ns", Slug: slug}, IconName: icon}
}

func TestManifestBuilder_GroupsAndOrders(t *testing.T) {
	b := NewManifestBuilder()
	b.Add("diamond_sword", 12, entrySet("late", "late"))
	b.Add("diamond_sword", 3, entrySet("early", "early"))
	b.Add("stick", 1, entrySet("wand", "wand"))

	doc := b.Document()
	swords := doc["diamond_sword"]
	if len(swords) != 2 {
		t.Fatalf("got %d sword entries", len(swords))
	}
	if swords[0].CustomModelData != 3 || swords[1].CustomModelData != 12 {
		t.Fatalf("entries not in ascending predicate order: %+v", swords)
	}
	if len(doc["stick"]) != 1 {
		t.Fatalf("stick group missing: %+v", doc)
	}
}

func TestManifestBuilder_EncodeSortsKeys(t *testing.T) {
	b := NewManifestBuilder()
	b.Add("zombie_head", 1, entrySet("z", "z"))
	b.Add("apple", 1, entrySet("a", "a"))

	data, err := b.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := string(data)
	if strings.Index(out, `"apple"`) > strings.Index(out, `"zombie_head"`) {
		t.Fatalf("keys not sorted:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("document should end with a newline")
	}
}

func TestManifestBuilder_EntryShape(t *testing.T) {
	b := NewManifestBuilder()
	b.Add("diamond_sword", 1001, entrySet("custom_sword", "custom_sword"))

	data, err := b.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{
		`"name": "custom_sword"`,
		`"custom_model_data": 1001`,
		`"icon": "custom_sword"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("missing %s in:\n%s", want, data)
		}
	}
}
