package javapack

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"path"
	"strings"
)

// ResolvedVariant is one fully resolved custom model data override, the unit
// handed to asset generation.
type ResolvedVariant struct {
	BaseItem        string
	CustomModelData int
	Model           Reference
	Icon            Reference
	Textures        map[string]string
	Display         map[string]DisplayTransform
	Elements        []Element
	TextureSize     [2]int
}

// DuplicatePredicateError is a later override for a (base item, predicate)
// pair already emitted; the first definition in scan order wins.
type DuplicatePredicateError struct {
	BaseItem        string
	CustomModelData int
	Model           Reference
}

func (e *DuplicatePredicateError) Error() string {
	return fmt.Sprintf("duplicate custom_model_data %d for %s, keeping first definition and dropping %s",
		e.CustomModelData, e.BaseItem, e.Model)
}

// InvalidPredicateError is a custom_model_data value outside the non-negative
// integers.
type InvalidPredicateError struct {
	BaseItem string
	Value    float64
	Entry    string
}

func (e *InvalidPredicateError) Error() string {
	return fmt.Sprintf("invalid custom_model_data %v for %s in %s", e.Value, e.BaseItem, e.Entry)
}

// ScanResult is one element of the scanner's output sequence: a resolved
// variant, or the error that skipped it. Fatal marks errors that abort the
// whole pack; the sequence ends after yielding one.
type ScanResult struct {
	Variant *ResolvedVariant
	Err     error
	Fatal   bool
}

type itemOverride struct {
	Predicate map[string]float64 `json:"predicate"`
	Model     string             `json:"model"`
}

type itemModelFile struct {
	Overrides []itemOverride `json:"overrides"`
}

// OverrideScanner discovers custom model data overrides in deterministic
// order: lexicographic by namespace, then by item model path. Later
// duplicates of a (base item, predicate) pair are dropped with an error
// result, never silently.
type OverrideScanner struct {
	pack     *Pack
	resolver *ModelGraphResolver
}

func NewOverrideScanner(pack *Pack) *OverrideScanner {
	return &OverrideScanner{pack: pack, resolver: NewModelGraphResolver(pack)}
}

type predicateKey struct {
	baseItem string
	cmd      int
}

// Variants returns a lazy, restartable sequence over the pack's overrides.
// Each iteration rescans from scratch, so dedup state never leaks between
// consumers. A failing variant never halts the sequence.
func (s *OverrideScanner) Variants() iter.Seq[ScanResult] {
	return func(yield func(ScanResult) bool) {
		namespaces, err := s.pack.Namespaces()
		if err != nil {
			yield(ScanResult{Err: err, Fatal: true})
			return
		}
		seen := map[predicateKey]bool{}
		for _, ns := range namespaces {
			for _, entry := range s.pack.ItemModels(ns) {
				if !s.scanFile(ns, entry, seen, yield) {
					return
				}
			}
		}
	}
}

func (s *OverrideScanner) scanFile(ns, entry string, seen map[predicateKey]bool, yield func(ScanResult) bool) bool {
	data, err := s.pack.Entry(entry)
	if err != nil {
		yield(ScanResult{Err: fmt.Errorf("read %s: %w", entry, err), Fatal: true})
		return false
	}
	var file itemModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Override declaration files must parse; this is the one malformed
		// model input that fails the pack.
		yield(ScanResult{Err: fmt.Errorf("override declaration %s: %w", entry, err), Fatal: true})
		return false
	}
	baseItem := strings.TrimSuffix(path.Base(entry), ".json")
	for _, o := range file.Overrides {
		raw, ok := o.Predicate["custom_model_data"]
		if !ok {
			// Pulling, blocking and the like select on other predicates.
			continue
		}
		if raw < 0 || raw != math.Trunc(raw) {
			if !yield(ScanResult{Err: &InvalidPredicateError{BaseItem: baseItem, Value: raw, Entry: entry}}) {
				return false
			}
			continue
		}
		cmd := int(raw)
		ref, err := ParseReference(o.Model, ns)
		if err != nil {
			yield(ScanResult{Err: fmt.Errorf("override declaration %s: %w", entry, err), Fatal: true})
			return false
		}
		key := predicateKey{baseItem: baseItem, cmd: cmd}
		if seen[key] {
			if !yield(ScanResult{Err: &DuplicatePredicateError{BaseItem: baseItem, CustomModelData: cmd, Model: ref}}) {
				return false
			}
			continue
		}
		seen[key] = true
		variant, err := s.resolveVariant(baseItem, cmd, ref)
		if err != nil {
			if !yield(ScanResult{Err: err}) {
				return false
			}
			continue
		}
		if !yield(ScanResult{Variant: variant}) {
			return false
		}
	}
	return true
}

func (s *OverrideScanner) resolveVariant(baseItem string, cmd int, ref Reference) (*ResolvedVariant, error) {
	model, err := s.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}
	icon, err := model.PrimaryTexture()
	if err != nil {
		return nil, fmt.Errorf("variant %s/%d: %w", baseItem, cmd, err)
	}
	iconRef, err := ParseReference(icon, ref.Namespace)
	if err != nil {
		return nil, fmt.Errorf("variant %s/%d: %w", baseItem, cmd, err)
	}
	return &ResolvedVariant{
		BaseItem:        baseItem,
		CustomModelData: cmd,
		Model:           ref,
		Icon:            iconRef,
		Textures:        model.Textures,
		Display:         model.Display,
		Elements:        model.Elements,
		TextureSize:     model.TextureSize,
	}, nil
}
