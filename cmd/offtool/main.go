// offtool is a CLI utility for reading, converting and generating OFF meshes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/offmesh/internal/config"
	"github.com/Faultbox/offmesh/internal/logger"
	"github.com/Faultbox/offmesh/internal/meshgen"
	"github.com/Faultbox/offmesh/pkg/formats"
	"github.com/Faultbox/offmesh/pkg/mesh"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, config.Args(), os.Stdin, os.Stdout))
}

// run executes one command and returns the process exit code.
func run(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) int {
	defer logger.Sync()

	if len(args) < 1 {
		printUsage(os.Stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args, stdin, stdout)
	case "convert":
		err = cmdConvert(cfg, args, stdin, stdout)
	case "validate":
		err = cmdValidate(args, stdin, stdout)
	case "gen":
		err = cmdGen(cfg, args, stdout)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return 1
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `offtool - OFF mesh utility

Usage:
  offtool [-config file] [-debug] [-log-file file] [-lenient]
          [-cells n] [-size s] <command> [options]

Commands:
  info <file.off>                          Show header, counts and bounds
  convert [-scale s] [-translate x,y,z] <in.off> <out.off>
                                           Re-encode a mesh, optionally transformed
  validate <file.off>                      Check attribute lengths and face indices
  gen [-cells n] [-size s] <box|sphere|cylinder> <out.off>
                                           Generate a primitive mesh
  config [file.yaml]                       Save the effective settings

Paths may be "-" for stdin or stdout.

Examples:
  offtool info bunny.off
  offtool convert -scale 0.01 bunny.off bunny_m.off
  offtool gen -cells 32 sphere sphere.off
  offtool -debug -cells 96 config`)
}

// readMesh decodes an OFF mesh from path, or from stdin when path is "-".
func readMesh(path string, stdin io.Reader) (*mesh.Mesh, error) {
	if path == "-" {
		return formats.DecodeOFF(stdin)
	}
	return formats.ParseOFFFile(path)
}

// readMeshWithHeader is readMesh that also returns the header the input declared.
func readMeshWithHeader(path string, stdin io.Reader) (*mesh.Mesh, formats.Header, error) {
	if path == "-" {
		return formats.DecodeOFFWithHeader(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, formats.Header{}, fmt.Errorf("opening OFF file: %w", err)
	}
	defer f.Close()

	return formats.DecodeOFFWithHeader(f)
}

// writeMesh encodes m to path, or to stdout when path is "-".
func writeMesh(path string, m *mesh.Mesh, opts formats.EncodeOptions, stdout io.Writer) error {
	if path == "-" {
		return formats.EncodeOFFWithOptions(stdout, m, opts)
	}
	return formats.WriteOFFFile(path, m, opts)
}

func cmdInfo(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: offtool info <file.off>")
	}

	m, header, err := readMeshWithHeader(args[0], stdin)
	if err != nil {
		return err
	}

	min, max := m.Bounds()
	var attrs []string
	if m.HasNormals() {
		attrs = append(attrs, "normals")
	}
	if m.HasColors() {
		attrs = append(attrs, "colors")
	}
	if m.HasUVs() {
		attrs = append(attrs, "uvs")
	}
	if len(attrs) == 0 {
		attrs = append(attrs, "none")
	}

	fmt.Fprintf(stdout, "File:       %s\n", args[0])
	fmt.Fprintf(stdout, "Header:     %s (dimension %d)\n", header.Keyword(), header.Dimension)
	fmt.Fprintf(stdout, "Writes as:  %s\n", formats.EncodeHeader(m).Keyword())
	fmt.Fprintf(stdout, "Vertices:   %d\n", m.VertexCount())
	fmt.Fprintf(stdout, "Faces:      %d\n", m.FaceCount())
	fmt.Fprintf(stdout, "Attributes: %s\n", strings.Join(attrs, ", "))
	fmt.Fprintf(stdout, "Bounds:     (%g, %g, %g) - (%g, %g, %g)\n",
		min.X(), min.Y(), min.Z(), max.X(), max.Y(), max.Z())

	return nil
}

func cmdConvert(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	scale := fs.Float64("scale", 1, "Uniform scale factor")
	translate := fs.String("translate", "", "Translation as x,y,z")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: offtool convert [-scale s] [-translate x,y,z] <in.off> <out.off>")
	}

	offset, err := parseVec3(*translate)
	if err != nil {
		return fmt.Errorf("invalid -translate: %w", err)
	}

	m, err := readMesh(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	logger.Debug("decoded mesh",
		zap.String("path", fs.Arg(0)),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("faces", m.FaceCount()))

	if *scale != 1 || offset != (mgl32.Vec3{}) {
		s := float32(*scale)
		m.Transform(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()).Mul4(mgl32.Scale3D(s, s, s)))
	}

	if err := m.Validate(); err != nil {
		if cfg.Validate.Strict {
			return fmt.Errorf("refusing to write %s: %w", fs.Arg(1), err)
		}
		logger.Warn("writing invalid mesh", zap.String("to", fs.Arg(1)), zap.Error(err))
	}

	if err := writeMesh(fs.Arg(1), m, formats.EncodeOptions{Comments: cfg.Encode.Comments}, stdout); err != nil {
		return err
	}
	logger.Info("converted mesh", zap.String("from", fs.Arg(0)), zap.String("to", fs.Arg(1)))
	return nil
}

func cmdValidate(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: offtool validate <file.off>")
	}

	m, err := readMesh(args[0], stdin)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: ok (%d vertices, %d faces)\n", args[0], m.VertexCount(), m.FaceCount())
	return nil
}

func cmdGen(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	cells := fs.Int("cells", cfg.Generate.Cells, "Marching cubes cells along the longest axis")
	size := fs.Float64("size", cfg.Generate.Size, "Edge length or diameter of the primitive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: offtool gen [-cells n] [-size s] <box|sphere|cylinder> <out.off>")
	}
	shape, out := fs.Arg(0), fs.Arg(1)

	opts := meshgen.Options{Size: *size, Cells: *cells}
	m, err := meshgen.Generate(meshgen.Shape(shape), opts)
	if err != nil {
		return err
	}
	logger.Debug("generated mesh",
		zap.String("shape", shape),
		zap.Int("cells", opts.Cells),
		zap.Float64("size", opts.Size),
		zap.Int("faces", m.FaceCount()))

	if err := writeMesh(out, m, formats.EncodeOptions{Comments: cfg.Encode.Comments}, stdout); err != nil {
		return err
	}
	logger.Info("generated mesh", zap.String("shape", shape), zap.String("to", out))
	return nil
}

// cmdConfig writes the effective settings, after config file and flags, as
// YAML. Without a path they go to the user's config directory.
func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: offtool config [file.yaml]")
	}

	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Sugar.Infof("saved config to %s", config.DefaultConfigPath())
		return nil
	}

	if err := cfg.SaveTo(args[0]); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logger.Sugar.Infof("saved config to %s", args[0])
	return nil
}

// parseVec3 parses "x,y,z". An empty string is the zero vector.
func parseVec3(s string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if s == "" {
		return v, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return v, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
