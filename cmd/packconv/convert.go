package main

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goxiaoy/go-eventbus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"git.patyhank.net/falloutBot/packconv/conv"
	"git.patyhank.net/falloutBot/packconv/javapack"
)

var convertCmd = &cobra.Command{
	Use:   "convert <pack>...",
	Short: "Convert one or more Java resource packs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output directory (default ./converted_packs)")
	convertCmd.Flags().Int("workers", 0, "concurrent pack conversions (default GOMAXPROCS)")
	convertCmd.Flags().Bool("convert-all", false, "treat arguments as directories of zipped packs")
	convertCmd.Flags().Bool("mcpack", true, "also write a .mcpack archive per pack")
	convertCmd.Flags().BoolP("verbose", "v", false, "per-variant progress output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output = out
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("mcpack") {
		cfg.Mcpack, _ = cmd.Flags().GetBool("mcpack")
	}
	convertAll, _ := cmd.Flags().GetBool("convert-all")
	verbose, _ := cmd.Flags().GetBool("verbose")

	inputs := args
	if convertAll {
		if inputs, err = expandZipDirs(args); err != nil {
			return err
		}
	}
	packs := make([]*javapack.Pack, 0, len(inputs))
	for _, input := range inputs {
		pack, err := openPack(input)
		if err != nil {
			return err
		}
		packs = append(packs, pack)
	}

	converter := conv.New(conv.Options{
		Workers:          cfg.Workers,
		DefaultNamespace: cfg.DefaultNamespace,
		MinEngineVersion: cfg.minEngine(),
	})
	if verbose {
		converter.Logger.SetLevel(log.InfoLevel)
		subscribeProgress(converter)
	}

	reports, err := converter.ConvertAll(context.Background(), packs, cfg.Output)
	if err != nil {
		return err
	}
	for i, pack := range packs {
		dest := filepath.Join(cfg.Output, pack.Meta().Name+"_bedrock")
		printSummary(pack, dest, reports[i], verbose)
		if cfg.Mcpack {
			mcpack := dest + ".mcpack"
			if err := writeMcpack(dest, mcpack); err != nil {
				return err
			}
			fmt.Printf("  mcpack: %s\n", mcpack)
		}
	}
	return nil
}

// openPack opens a pack directory or zip container and locates the pack root
// by its pack.mcmeta.
func openPack(input string) (*javapack.Pack, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if info.IsDir() {
		return javapack.New(name, os.DirFS(input)), nil
	}
	if !strings.EqualFold(filepath.Ext(input), ".zip") {
		return nil, fmt.Errorf("%s: only .zip containers and directories are supported", input)
	}
	r, err := zip.OpenReader(input)
	if err != nil {
		return nil, fmt.Errorf("invalid zip container %s: %w", input, err)
	}
	var fsys fs.FS = &r.Reader
	if root := findPackRoot(fsys); root != "." {
		if fsys, err = fs.Sub(fsys, root); err != nil {
			return nil, err
		}
	}
	return javapack.New(name, fsys), nil
}

// findPackRoot locates the directory holding pack.mcmeta inside a container,
// for zips that wrap the pack in a top-level folder.
func findPackRoot(fsys fs.FS) string {
	root := "."
	fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == "pack.mcmeta" {
			root = filepath.ToSlash(filepath.Dir(p))
			return fs.SkipAll
		}
		return nil
	})
	return root
}

func expandZipDirs(dirs []string) ([]string, error) {
	var zips []string
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*.zip"))
		if err != nil {
			return nil, err
		}
		zips = append(zips, matches...)
	}
	if len(zips) == 0 {
		return nil, fmt.Errorf("no zip files found in %s", strings.Join(dirs, ", "))
	}
	return zips, nil
}

func subscribeProgress(converter *conv.Converter) {
	eventbus.Subscribe[*conv.VariantConvertedEvent](converter.Bus)(func(ctx context.Context, ev *conv.VariantConvertedEvent) error {
		converter.Logger.Infof("%s: %s cmd %d -> %s", ev.Pack, ev.BaseItem, ev.CustomModelData, ev.Identifier)
		return nil
	})
	eventbus.Subscribe[*conv.VariantSkippedEvent](converter.Bus)(func(ctx context.Context, ev *conv.VariantSkippedEvent) error {
		converter.Logger.Warnf("%s: [%s] %s", ev.Pack, ev.Diagnostic.Kind, ev.Diagnostic.Message)
		return nil
	})
}

func printSummary(pack *javapack.Pack, dest string, report *conv.Report, verbose bool) {
	color.New(color.FgGreen, color.Bold).Printf("converted %s\n", pack.Name())
	fmt.Printf("  output: %s\n", dest)
	color.Cyan("  items: %d", report.Converted())
	if report.Skipped() > 0 {
		color.Yellow("  skipped: %d (%d missing external dependencies)",
			report.Skipped(), report.MissingDependencies())
	}
	if !verbose {
		return
	}
	for _, d := range report.Diagnostics() {
		if d.Kind.Severity() == conv.SeverityWarning {
			color.Yellow("  [%s] %s", d.Kind, d.Message)
		} else {
			fmt.Printf("  [%s] %s\n", d.Kind, d.Message)
		}
	}
}

// writeMcpack zips the output tree into a .mcpack container.
func writeMcpack(dir, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}
