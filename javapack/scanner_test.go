package javapack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func scannerPack() *Pack {
	return New("test", modelFS(map[string]string{
		"assets/minecraft/models/item/diamond_sword.json": `{
			"overrides": [
				{"predicate": {"custom_model_data": 1001}, "model": "ns:item/custom_sword"},
				{"predicate": {"pulling": 1}, "model": "ns:item/custom_sword"},
				{"predicate": {"custom_model_data": 1001}, "model": "ns:item/other_sword"},
				{"predicate": {"custom_model_data": 7}, "model": "ns:item/ghost"},
				{"predicate": {"custom_model_data": -5}, "model": "ns:item/custom_sword"}
			]
		}`,
		"assets/ns/models/item/custom_sword.json": `{
			"parent": "minecraft:item/handheld",
			"textures": {"layer0": "ns:item/custom_sword"}
		}`,
		"assets/ns/models/item/other_sword.json": `{
			"textures": {"layer0": "ns:item/other_sword"}
		}`,
	}))
}

func collect(s *OverrideScanner) (variants []*ResolvedVariant, errs []error) {
	for res := range s.Variants() {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		variants = append(variants, res.Variant)
	}
	return variants, errs
}

func TestScanner_ResolvesAndDeduplicates(t *testing.T) {
	variants, errs := collect(NewOverrideScanner(scannerPack()))

	require.Len(t, variants, 1)
	v := variants[0]
	require.Equal(t, "diamond_sword", v.BaseItem)
	require.Equal(t, 1001, v.CustomModelData)
	require.Equal(t, Reference{"ns", "item/custom_sword"}, v.Model)
	require.Equal(t, Reference{"ns", "item/custom_sword"}, v.Icon)

	var dups, invalid, unresolved int
	for _, err := range errs {
		var dup *DuplicatePredicateError
		var inv *InvalidPredicateError
		switch {
		case errors.As(err, &dup):
			dups++
			require.Equal(t, 1001, dup.CustomModelData)
		case errors.As(err, &inv):
			invalid++
		case errors.Is(err, ErrUnresolvedReference):
			unresolved++
		}
	}
	require.Equal(t, 1, dups, "first definition in scan order wins exactly once")
	require.Equal(t, 1, invalid)
	require.Equal(t, 1, unresolved)
}

func TestScanner_Restartable(t *testing.T) {
	scanner := NewOverrideScanner(scannerPack())

	first, firstErrs := collect(scanner)
	second, secondErrs := collect(scanner)

	require.Len(t, second, len(first), "rescans must not leak dedup state")
	require.Len(t, secondErrs, len(firstErrs))
	for i := range first {
		require.Equal(t, first[i].CustomModelData, second[i].CustomModelData)
		require.Equal(t, first[i].Model, second[i].Model)
	}
}

func TestScanner_DeterministicOrder(t *testing.T) {
	pack := New("test", modelFS(map[string]string{
		"assets/beta/models/item/stick.json": `{
			"overrides": [{"predicate": {"custom_model_data": 2}, "model": "beta:item/wand"}]
		}`,
		"assets/alpha/models/item/bow.json": `{
			"overrides": [{"predicate": {"custom_model_data": 1}, "model": "alpha:item/crossbow"}]
		}`,
		"assets/alpha/models/item/crossbow.json": `{"textures": {"layer0": "alpha:item/crossbow"}}`,
		"assets/beta/models/item/wand.json":      `{"textures": {"layer0": "beta:item/wand"}}`,
	}))

	variants, errs := collect(NewOverrideScanner(pack))
	require.Empty(t, errs)
	// Lexicographic by namespace, then by item model path. The target models
	// themselves declare no overrides and contribute nothing.
	require.Len(t, variants, 2)
	require.Equal(t, "bow", variants[0].BaseItem)
	require.Equal(t, "stick", variants[1].BaseItem)
}

func TestScanner_MalformedDeclarationIsFatal(t *testing.T) {
	pack := New("test", modelFS(map[string]string{
		"assets/minecraft/models/item/broken.json": `{"overrides": [`,
	}))

	var fatal int
	var total int
	for res := range NewOverrideScanner(pack).Variants() {
		total++
		if res.Fatal {
			fatal++
			require.Error(t, res.Err)
		}
	}
	require.Equal(t, 1, fatal)
	require.Equal(t, 1, total, "sequence ends after the fatal result")
}

func TestScanner_SelfOverrideWithoutCMDIgnored(t *testing.T) {
	// Target models double as scannable item model files; without a
	// custom_model_data predicate they must stay silent.
	pack := New("test", modelFS(map[string]string{
		"assets/ns/models/item/plain.json": `{"textures": {"layer0": "ns:item/plain"}}`,
	}))
	variants, errs := collect(NewOverrideScanner(pack))
	require.Empty(t, variants)
	require.Empty(t, errs)
}
