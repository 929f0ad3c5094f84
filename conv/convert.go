package conv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goxiaoy/go-eventbus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"git.patyhank.net/falloutBot/packconv/bedrock"
	"git.patyhank.net/falloutBot/packconv/javapack"
	"git.patyhank.net/falloutBot/packconv/vanilla"
)

// Options tune a Converter.
type Options struct {
	// Workers bounds concurrent pack conversions and per-pack variant
	// fan-out. Zero means GOMAXPROCS.
	Workers int
	// DefaultNamespace replaces the minecraft namespace in generated
	// identifiers. Empty means "custom".
	DefaultNamespace string
	// MinEngineVersion for generated pack manifests. Zero means 1.16.0.
	MinEngineVersion [3]int
}

// Converter converts Java packs into Bedrock asset trees plus mapping
// documents. One Converter may convert many packs; every conversion is an
// independent computation over its immutable input.
type Converter struct {
	opts   Options
	Logger *log.Logger
	Bus    *eventbus.EventBus
}

func New(opts Options) *Converter {
	logger := log.New()
	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "15:04:05"
	formatter.FullTimestamp = true
	formatter.ForceColors = true
	logger.SetFormatter(formatter)
	// Diagnostics belong to the report, not the terminal. The CLI raises the
	// level when asked for verbose output.
	logger.SetLevel(log.WarnLevel)

	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.DefaultNamespace == "" {
		opts.DefaultNamespace = "custom"
	}
	if opts.MinEngineVersion == ([3]int{}) {
		opts.MinEngineVersion = [3]int{1, 16, 0}
	}
	return &Converter{opts: opts, Logger: logger, Bus: eventbus.New()}
}

type genResult struct {
	set *bedrock.AssetSet
	err error
}

// Convert converts one pack into dest. The output tree is assembled in memory
// and written only once the pipeline finished, so a fatal error leaves no
// partial output behind. Variant-scoped failures land in the report and never
// interrupt the run.
func (c *Converter) Convert(ctx context.Context, pack *javapack.Pack, dest string) (*Report, error) {
	report := NewReport()
	c.Logger.Debugf("scanning %s", pack.Name())

	// Scan order, dedup and diagnostics stay sequential; determinism of
	// identifier assignment depends on it.
	scanner := javapack.NewOverrideScanner(pack)
	var variants []*javapack.ResolvedVariant
	for res := range scanner.Variants() {
		if res.Fatal {
			return nil, fmt.Errorf("pack %s: %w", pack.Name(), res.Err)
		}
		if res.Err != nil {
			d := classify(res.Err)
			report.recordSkip(d)
			c.publishSkip(ctx, pack.Name(), d)
			continue
		}
		variants = append(variants, res.Variant)
	}

	unknownItems := map[string]bool{}
	for _, v := range variants {
		if vanilla.KnownItem(v.BaseItem) || unknownItems[v.BaseItem] {
			continue
		}
		unknownItems[v.BaseItem] = true
		report.add(Diagnostic{
			Kind:    KindUnknownBaseItem,
			Message: fmt.Sprintf("base item %s is not a vanilla item id, converting anyway", v.BaseItem),
			Context: v.BaseItem,
		})
	}

	table := bedrock.NewIdentifierTable(c.opts.DefaultNamespace)
	ids := make([]bedrock.Identifier, len(variants))
	for i, v := range variants {
		ids[i] = table.Assign(v)
	}

	// Asset generation is embarrassingly parallel; results rejoin in scan
	// order below before anything manifest-related happens.
	gen := bedrock.NewGenerator(pack)
	results := make([]genResult, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i := range variants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			set, err := gen.Generate(ids[i], variants[i])
			results[i] = genResult{set: set, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	builder := bedrock.NewManifestBuilder()
	files := map[string][]byte{}
	for i, v := range variants {
		res := results[i]
		if res.err != nil {
			d := classify(res.err)
			report.recordSkip(d)
			c.publishSkip(ctx, pack.Name(), d)
			continue
		}
		if res.set.FallbackAnimation {
			report.add(Diagnostic{
				Kind:    KindMissingDisplay,
				Message: fmt.Sprintf("no display transforms for %s, substituted wield pose", res.set.Identifier),
				Context: v.Model.String(),
			})
		}
		maps.Copy(files, res.set.Files)
		builder.Add(v.BaseItem, v.CustomModelData, res.set)
		report.converted.Add(1)
		_ = eventbus.Publish[*VariantConvertedEvent](c.Bus)(ctx, &VariantConvertedEvent{
			Pack:            pack.Name(),
			BaseItem:        v.BaseItem,
			CustomModelData: v.CustomModelData,
			Identifier:      res.set.Identifier.String(),
		})
	}

	meta := pack.Meta()
	manifest, err := json.MarshalIndent(bedrock.BuildPackManifest(meta.Name, meta.Description, c.opts.MinEngineVersion), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("pack %s: encode manifest: %w", pack.Name(), err)
	}
	files["manifest.json"] = append(manifest, '\n')
	if icon, err := pack.Entry("pack.png"); err == nil {
		files["pack_icon.png"] = icon
	}
	mapping, err := builder.Encode()
	if err != nil {
		return nil, fmt.Errorf("pack %s: encode mappings: %w", pack.Name(), err)
	}
	files["geyser_mappings.json"] = mapping

	if err := writeTree(dest, files); err != nil {
		return nil, fmt.Errorf("pack %s: %w", pack.Name(), err)
	}

	_ = eventbus.Publish[*PackConvertedEvent](c.Bus)(ctx, &PackConvertedEvent{
		Pack:      pack.Name(),
		Converted: report.Converted(),
		Skipped:   report.Skipped(),
	})
	c.Logger.Infof("converted %s: %d items, %d skipped, %d missing dependencies",
		pack.Name(), report.Converted(), report.Skipped(), report.MissingDependencies())
	return report, nil
}

// ConvertAll converts packs concurrently, one worker per pack, writing each
// into destRoot/<name>_bedrock. Reports line up with the input order. The
// first fatal error cancels remaining work.
func (c *Converter) ConvertAll(ctx context.Context, packs []*javapack.Pack, destRoot string) ([]*Report, error) {
	reports := make([]*Report, len(packs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, pack := range packs {
		g.Go(func() error {
			report, err := c.Convert(gctx, pack, filepath.Join(destRoot, pack.Meta().Name+"_bedrock"))
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

func (c *Converter) publishSkip(ctx context.Context, pack string, d Diagnostic) {
	c.Logger.Debugf("%s: [%s] %s", pack, d.Kind, d.Message)
	_ = eventbus.Publish[*VariantSkippedEvent](c.Bus)(ctx, &VariantSkippedEvent{Pack: pack, Diagnostic: d})
}

// writeTree writes the assembled files in sorted path order.
func writeTree(dest string, files map[string][]byte) error {
	names := maps.Keys(files)
	slices.Sort(names)
	for _, name := range names {
		full := filepath.Join(dest, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, files[name], 0o644); err != nil {
			return err
		}
	}
	return nil
}
