package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/meigma/meshcache"
	"github.com/meigma/meshcache/internal/memscene"
	"github.com/meigma/meshcache/internal/objfile"
)

// app binds one client and an in-memory scene to the CLI commands.
type app struct {
	settings settings
	client   *meshcache.Client
	scene    *memscene.Scene
	stdout   io.Writer
}

func newApp(s settings, handler slog.Handler, stdout io.Writer) (*app, error) {
	scene := memscene.New()
	client, err := meshcache.NewClient(
		meshcache.WithConfig(s.Config),
		meshcache.WithScene(scene),
		meshcache.WithLogHandler(handler),
	)
	if err != nil {
		return nil, err
	}
	return &app{settings: s, client: client, scene: scene, stdout: stdout}, nil
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "cache":
		return a.cache(ctx, args, false)
	case "checkpoint":
		return a.cache(ctx, args, true)
	case "restore":
		return a.restore(ctx, args)
	case "inspect":
		return a.inspect(args)
	case "list":
		return a.list(args)
	case "purge":
		return a.purge(args)
	case "config":
		return a.printConfig(args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func subFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseSub(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errUsage, fs.Name(), err)
	}
	if fs.NArg() != want {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, fs.Name(), want, fs.NArg())
	}
	return fs.Args(), nil
}

func (a *app) cache(ctx context.Context, args []string, checkpoint bool) error {
	name := "cache"
	if checkpoint {
		name = "checkpoint"
	}
	fs := subFlags(name)
	objName := fs.String("name", "", "object name (default: OBJ object or file name)")
	rest, err := parseSub(fs, args, 1)
	if err != nil {
		return err
	}

	mesh, err := loadOBJ(rest[0])
	if err != nil {
		return err
	}
	if *objName != "" {
		mesh.Name = *objName
	}
	node := a.scene.Add(mesh.Name, mesh.Buffer)

	var path string
	if checkpoint {
		path, err = a.client.Checkpoint(ctx, node)
	} else {
		path, err = a.client.Cache(ctx, node)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, path)
	return nil
}

func loadOBJ(path string) (*objfile.Mesh, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied input file
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := objfile.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return mesh, nil
}

func (a *app) restore(ctx context.Context, args []string) error {
	fs := subFlags("restore")
	out := fs.String("o", "", "output OBJ file (default: stdout)")
	rest, err := parseSub(fs, args, 1)
	if err != nil {
		return err
	}

	restored, err := a.client.Restore(ctx, rest[0])
	if err != nil {
		return err
	}
	node, ok := restored.(*memscene.Node)
	if !ok {
		return fmt.Errorf("unexpected node type %T", restored)
	}
	mesh := &objfile.Mesh{Name: node.Name(), Buffer: node.Mesh()}

	if *out == "" {
		return objfile.Write(a.stdout, mesh)
	}
	return writeOBJ(*out, mesh)
}

func writeOBJ(path string, mesh *objfile.Mesh) (err error) {
	f, err := os.Create(path) //nolint:gosec // user-supplied output file
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return objfile.Write(f, mesh)
}

func (a *app) inspect(args []string) error {
	rest, err := parseSub(subFlags("inspect"), args, 1)
	if err != nil {
		return err
	}
	info, err := a.client.Inspect(rest[0])
	if err != nil {
		return err
	}

	md := info.Metadata
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "path\t%s\n", info.Path)
	fmt.Fprintf(tw, "size\t%d\n", info.Size)
	fmt.Fprintf(tw, "digest\t%s\n", info.Digest)
	fmt.Fprintf(tw, "object\t%s\n", md.Name)
	fmt.Fprintf(tw, "vertices\t%d\n", md.Counts.Vertices)
	fmt.Fprintf(tw, "normals\t%d\n", md.Counts.Normals)
	fmt.Fprintf(tw, "uvs\t%d\n", md.Counts.UVs)
	fmt.Fprintf(tw, "faces\t%d\n", md.Counts.Faces)
	fmt.Fprintf(tw, "position\t%g %g %g\n", md.Position.X, md.Position.Y, md.Position.Z)
	fmt.Fprintf(tw, "rotation\t%g %g %g\n", md.Rotation.X, md.Rotation.Y, md.Rotation.Z)
	fmt.Fprintf(tw, "scale\t%g %g %g\n", md.Scale.X, md.Scale.Y, md.Scale.Z)
	fmt.Fprintf(tw, "wire color\t#%02x%02x%02x\n", md.WireColor.R(), md.WireColor.G(), md.WireColor.B())
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ENTRY\tMETHOD\tSIZE\tCOMPRESSED\tCRC32")
	for _, e := range info.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%08x\n", e.Name, e.Method, e.Size, e.CompressedSize, e.CRC32)
	}
	return tw.Flush()
}

func (a *app) list(args []string) error {
	fs := subFlags("list")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: list: %w", errUsage, err)
	}

	var (
		pkgs []meshcache.Package
		err  error
	)
	switch fs.NArg() {
	case 0:
		pkgs, err = a.client.Store().List()
	case 1:
		pkgs, err = a.client.Checkpoints(fs.Arg(0))
	default:
		return fmt.Errorf("%w: list takes at most one object name", errUsage)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT\tCHECKPOINT\tSIZE\tMODIFIED\tPATH")
	for _, p := range pkgs {
		stamp := "-"
		if p.IsCheckpoint() {
			stamp = p.Checkpoint.Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.Object, stamp, p.Size, p.ModTime.Format(time.DateTime), p.Path)
	}
	return tw.Flush()
}

func (a *app) purge(args []string) error {
	if _, err := parseSub(subFlags("purge"), args, 0); err != nil {
		return err
	}
	n, err := a.client.Purge()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "removed %d package(s) from %s\n", n, a.client.CacheDir())
	return nil
}

func (a *app) printConfig(args []string) error {
	if _, err := parseSub(subFlags("config"), args, 0); err != nil {
		return err
	}
	cfg := a.client.Config()
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "cache_dir\t%s\n", cfg.CacheDir)
	fmt.Fprintf(tw, "ext\t%s\n", cfg.Ext)
	fmt.Fprintf(tw, "buffering\t%s\n", cfg.Buffering)
	fmt.Fprintf(tw, "strategy\t%s\n", cfg.Strategy)
	fmt.Fprintf(tw, "compression\t%s\n", cfg.Compression)
	fmt.Fprintf(tw, "method\t%s\n", cfg.Method)
	fmt.Fprintf(tw, "workers\t%d\n", cfg.Workers)
	fmt.Fprintf(tw, "debug\t%t\n", cfg.Debug)
	fmt.Fprintf(tw, "log_file\t%s\n", a.settings.LogFile)
	return tw.Flush()
}
