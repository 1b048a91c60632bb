package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/bulkdata"
	"github.com/hupe1980/meshdesc/codec"
	"github.com/hupe1980/meshdesc/obj"
	"github.com/hupe1980/meshdesc/persistence"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{"import", "import [-asset name] [-flip-v] [-legacy] file.obj...", runImport},
	{"export", "export [-o file.obj] [-flip-v] asset", runExport},
	{"inspect", "inspect asset...", runInspect},
	{"list", "list", runList},
	{"prune", "prune", runPrune},
	{"config", "config", runConfig},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func (e *env) print(v any) error {
	data, err := codec.IndentJSON{}.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "%s\n", data)
	return err
}

func (e *env) bulkOptions(legacy bool) ([]bulkdata.Option, error) {
	typ, err := e.cfg.Bulk.CompressionType()
	if err != nil {
		return nil, err
	}
	opts := []bulkdata.Option{
		bulkdata.WithCompression(typ),
		bulkdata.WithHashAsGUID(e.cfg.Bulk.HashAsGUID),
	}
	if legacy {
		opts = append(opts, bulkdata.WithFormatVersion(persistence.FormatVersionLegacyPolygons))
	}
	return opts, nil
}

// commit points asset at ref, retrying once if another writer bumped the
// version between the lookup and the commit.
func (e *env) commit(ctx context.Context, asset string, ref bulkdata.Ref) (bulkdata.Entry, error) {
	var err error
	for range 2 {
		var expected uint64
		cur, lerr := e.catalog.Lookup(ctx, asset)
		switch {
		case lerr == nil:
			if cur.Ref.SameContent(ref) {
				return cur, nil
			}
			expected = cur.Version
		case !errors.Is(lerr, bulkdata.ErrAssetNotFound):
			return bulkdata.Entry{}, lerr
		}

		var entry bulkdata.Entry
		entry, err = e.catalog.Commit(ctx, asset, ref, expected)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, bulkdata.ErrConcurrentModification) {
			return bulkdata.Entry{}, err
		}
		e.logger.WarnContext(ctx, "catalog commit raced, retrying", "asset", asset)
	}
	return bulkdata.Entry{}, err
}

func assetName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func runImport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("import", e.errOut)
	asset := fs.String("asset", "", "asset name (default: file name without extension; single file only)")
	flipV := fs.Bool("flip-v", false, "mirror texture coordinates vertically")
	legacy := fs.Bool("legacy", false, "store the polygon-only archive format")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return errors.New("import: no input files")
	}
	if *asset != "" && len(files) > 1 {
		return errors.New("import: -asset needs exactly one input file")
	}

	bulkOpts, err := e.bulkOptions(*legacy)
	if err != nil {
		return err
	}

	reports := make([]report, len(files))
	bulks := make([]*bulkdata.BulkData, len(files))
	for i, file := range files {
		name := *asset
		if name == "" {
			name = assetName(file)
		}
		md, rep, err := e.importFile(ctx, file, name, *flipV)
		if err != nil {
			return err
		}
		b := bulkdata.New(bulkOpts...)
		if err := b.Save(md); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		bulks[i] = b
		reports[i] = report{Asset: name, ID: b.IDString(), Import: rep, Mesh: summarize(md)}
	}

	refs, err := e.repo.PutAll(ctx, bulks)
	if err != nil {
		return err
	}
	for i := range reports {
		entry, err := e.commit(ctx, reports[i].Asset, refs[i])
		if err != nil {
			return err
		}
		reports[i].Version = entry.Version
		reports[i].Ref = entry.Ref
		e.logger.InfoContext(ctx, "asset committed",
			"asset", entry.Asset,
			"version", entry.Version,
			"hash", entry.Ref.Hash,
		)
	}
	return e.print(reports)
}

func (e *env) importFile(ctx context.Context, file, asset string, flipV bool) (*meshdesc.MeshDescription, *importReport, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	md := meshdesc.New(meshdesc.WithLogger(e.logger.WithName(asset)))
	stats, err := obj.Import(ctx, f, md, obj.WithFlipV(flipV))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}

	tri := md.TriangulateMesh()
	remap := md.Compact()

	return md, &importReport{
		Source:             file,
		Skipped:            stats.Skipped,
		ForcedEars:         tri.ForcedEars,
		DegeneratePolygons: tri.DegeneratePolygons,
		Compacted:          !remap.IsIdentity(),
	}, nil
}

func (e *env) loadAsset(ctx context.Context, asset string) (bulkdata.Entry, *meshdesc.MeshDescription, error) {
	entry, err := e.catalog.Lookup(ctx, asset)
	if err != nil {
		return bulkdata.Entry{}, nil, err
	}
	md := meshdesc.New(meshdesc.WithLogger(e.logger.WithName(asset)))
	if err := e.repo.LoadMesh(ctx, entry.Ref, md); err != nil {
		return bulkdata.Entry{}, nil, err
	}
	return entry, md, nil
}

func runExport(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("export", e.errOut)
	output := fs.String("o", "", "output file (default: asset.obj)")
	flipV := fs.Bool("flip-v", false, "mirror texture coordinates vertically")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("export: need exactly one asset")
	}
	asset := fs.Arg(0)
	if *output == "" {
		*output = asset + ".obj"
	}

	_, md, err := e.loadAsset(ctx, asset)
	if err != nil {
		return err
	}
	err = persistence.SaveToFile(*output, func(w io.Writer) error {
		return obj.Export(w, md, obj.WithFlipV(*flipV))
	})
	if err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "asset exported", "asset", asset, "file", *output)
	return nil
}

func runInspect(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("inspect", e.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("inspect: no assets")
	}

	reports := make([]report, 0, fs.NArg())
	for _, asset := range fs.Args() {
		entry, md, err := e.loadAsset(ctx, asset)
		if err != nil {
			return err
		}
		reports = append(reports, report{
			Asset:   entry.Asset,
			Version: entry.Version,
			ID:      entry.Ref.IDString(),
			Ref:     entry.Ref,
			Mesh:    summarize(md),
		})
	}
	return e.print(reports)
}

func runList(ctx context.Context, e *env, _ []string) error {
	assets, err := e.catalog.Assets(ctx)
	if err != nil {
		return err
	}
	entries := make([]bulkdata.Entry, 0, len(assets))
	for _, a := range assets {
		entry, err := e.catalog.Lookup(ctx, a)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	return e.print(entries)
}

// runPrune deletes every stored payload no catalog entry points at.
func runPrune(ctx context.Context, e *env, _ []string) error {
	assets, err := e.catalog.Assets(ctx)
	if err != nil {
		return err
	}
	live := make([]bulkdata.Ref, 0, len(assets))
	for _, a := range assets {
		entry, err := e.catalog.Lookup(ctx, a)
		if err != nil {
			return err
		}
		live = append(live, entry.Ref)
	}

	n, err := e.repo.Prune(ctx, live)
	if err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "prune completed", "deleted", n, "live", len(live))
	return e.print(map[string]int{"deleted": n, "live": len(live)})
}

func runConfig(_ context.Context, e *env, _ []string) error {
	data, err := e.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = e.out.Write(data)
	return err
}
