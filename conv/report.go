// Package conv drives Java to Bedrock pack conversions and accumulates their
// reports.
package conv

import (
	"errors"
	"fmt"
	"sync"

	"github.com/df-mc/atomic"

	"git.patyhank.net/falloutBot/packconv/javapack"
)

// Kind classifies a diagnostic.
type Kind string

const (
	KindUnresolvedReference   Kind = "unresolved_reference"
	KindCyclicModelChain      Kind = "cyclic_model_chain"
	KindAssetGenerationFailed Kind = "asset_generation_failed"
	KindDuplicatePredicate    Kind = "duplicate_predicate"
	KindInvalidPredicate      Kind = "invalid_predicate"
	KindMissingDisplay        Kind = "missing_display"
	KindUnknownBaseItem       Kind = "unknown_base_item"
)

// Severity separates warnings from informational notes.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (k Kind) Severity() Severity {
	if k == KindMissingDisplay {
		return SeverityInfo
	}
	return SeverityWarning
}

// Diagnostic is one recoverable event of a pack conversion.
type Diagnostic struct {
	Kind    Kind
	Message string
	Context string
}

// Report accumulates diagnostics and counters for one pack conversion. A
// report is created fresh per pack and only ever written by the engine; the
// CLI consumes it once at the end. Counters are atomic because variant asset
// generation fans out.
type Report struct {
	converted   *atomic.Int64
	skipped     *atomic.Int64
	missingDeps *atomic.Int64

	mu          sync.Mutex
	diagnostics []Diagnostic
}

func NewReport() *Report {
	return &Report{
		converted:   atomic.NewInt64(0),
		skipped:     atomic.NewInt64(0),
		missingDeps: atomic.NewInt64(0),
	}
}

func (r *Report) Converted() int64 {
	return r.converted.Load()
}

func (r *Report) Skipped() int64 {
	return r.skipped.Load()
}

func (r *Report) MissingDependencies() int64 {
	return r.missingDeps.Load()
}

// Diagnostics returns the accumulated diagnostics in the order they were
// recorded.
func (r *Report) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

func (r *Report) add(d Diagnostic) {
	r.mu.Lock()
	r.diagnostics = append(r.diagnostics, d)
	r.mu.Unlock()
}

// recordSkip registers a variant-scoped failure: the diagnostic, the skip
// counter, and the missing dependency counter where it applies.
func (r *Report) recordSkip(d Diagnostic) {
	r.add(d)
	r.skipped.Add(1)
	if d.Kind == KindUnresolvedReference {
		r.missingDeps.Add(1)
	}
}

// classify maps scanner and generation errors onto the diagnostic taxonomy.
// Anything untyped failed while producing assets.
func classify(err error) Diagnostic {
	var (
		dup   *javapack.DuplicatePredicateError
		inv   *javapack.InvalidPredicateError
		cyc   *javapack.CyclicChainError
		unres *javapack.UnresolvedReferenceError
	)
	switch {
	case errors.As(err, &dup):
		return Diagnostic{
			Kind:    KindDuplicatePredicate,
			Message: err.Error(),
			Context: fmt.Sprintf("%s/%d", dup.BaseItem, dup.CustomModelData),
		}
	case errors.As(err, &inv):
		return Diagnostic{Kind: KindInvalidPredicate, Message: err.Error(), Context: inv.Entry}
	case errors.As(err, &cyc):
		return Diagnostic{Kind: KindCyclicModelChain, Message: err.Error(), Context: cyc.Chain[0].String()}
	case errors.As(err, &unres):
		return Diagnostic{Kind: KindUnresolvedReference, Message: err.Error(), Context: unres.Ref.String()}
	}
	return Diagnostic{Kind: KindAssetGenerationFailed, Message: err.Error()}
}
