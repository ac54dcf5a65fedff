package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sograph/sograph/internal/config"
	"github.com/sograph/sograph/pkg/depgraph"
	"github.com/sograph/sograph/pkg/dot"
	"github.com/sograph/sograph/pkg/elfsym"
	"github.com/sograph/sograph/pkg/locate"
	"github.com/sograph/sograph/pkg/render"
)

// defaultOutput is the graph-description path used when neither the command
// line nor the config file names one.
const defaultOutput = "sograph.dot"

// scanOpts holds the command-line flags of the root command.
type scanOpts struct {
	depth      int      // recursion bound
	groups     []string // path substrings, palette order
	output     string   // description file path
	image      string   // optional PNG path
	jsonPath   string   // optional graph JSON path
	configPath string   // optional TOML config path
}

// applyConfig folds file-supplied defaults into opts. Flags the user set
// explicitly win; config groups are appended after command-line groups so
// flag-defined groups claim the earlier palette colors.
func applyConfig(opts *scanOpts, cfg config.Config, changed func(string) bool) {
	if !changed("depth") && cfg.Depth > 0 {
		opts.depth = cfg.Depth
	}
	if !changed("output") && cfg.Output != "" {
		opts.output = cfg.Output
	}
	opts.groups = append(opts.groups, cfg.Groups...)
}

func (c *CLI) scanCommand() *cobra.Command {
	opts := scanOpts{depth: depgraph.DefaultMaxDepth, output: defaultOutput}

	cmd := &cobra.Command{
		Use:   "sograph <elf-file>",
		Short: "Graph the shared-library dependencies of an ELF binary",
		Long: `sograph walks the shared-library dependency graph of an ELF binary and
writes it as a Graphviz description. Each library node is annotated with its
exported function count, and each dependency edge with an estimate of the
symbols actually referenced across it.

Libraries are resolved the way the dynamic linker would: linker cache first,
then LD_LIBRARY_PATH, configured search paths, the standard system
directories, and finally the binary's own directory.

Examples:
  sograph /usr/bin/curl
  sograph --depth 3 --image deps.png /usr/bin/curl
  sograph --group /usr/lib --group /opt/app ./app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.depth < 0 {
				return fmt.Errorf("--depth must not be negative, got %d", opts.depth)
			}
			return runScan(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "maximum recursion depth")
	cmd.Flags().StringArrayVar(&opts.groups, "group", nil, "group libraries whose path contains this substring (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "graph-description output file")
	cmd.Flags().StringVar(&opts.image, "image", "", "also render a PNG to this path")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "also export the graph as JSON to this path")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file (default ~/.config/sograph/config.toml)")

	return cmd
}

// runScan performs the walk and writes every requested artifact. The
// description file is written incrementally while walking; image and JSON
// exports run afterwards and their failures never fail the run.
func runScan(cmd *cobra.Command, elfPath string, opts scanOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyConfig(&opts, cfg, cmd.Flags().Changed)

	if _, err := os.Stat(elfPath); err != nil {
		return fmt.Errorf("cannot read %s: %w", elfPath, err)
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	// The image is rendered from the same bytes that went to disk, so the
	// description is buffered alongside the file only when needed.
	var dotBuf bytes.Buffer
	var w io.Writer = out
	if opts.image != "" {
		w = io.MultiWriter(out, &dotBuf)
	}

	groups := depgraph.NewGroups(opts.groups, cfg.Palette)
	walker := depgraph.New(elfsym.FileInspector{}, locate.Default(elfPath, cfg.SearchPaths))
	writer := dot.NewWriter(w)
	collected := depgraph.NewGraph()

	if err := writer.Open(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	prog := newProgress(logger)
	walkOpts := depgraph.Options{
		Groups: groups,
		OnVisit: func(v depgraph.Visit) {
			printVisit(v.Level, v.Node.File, v.Node.Path, groupLabel(v.Node.Group), v.Node.Color, v.Node.Functions)
		},
		Warnf: logger.Warnf,
	}
	emit := depgraph.MultiEmitter{writer, collected}

	if err := walker.Walk(ctx, elfPath, opts.depth, emit, walkOpts); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.done(fmt.Sprintf("Walked %d libraries", collected.NodeCount()))

	printSuccess("Dependency graph written")
	printFile(opts.output)
	printStats(collected.NodeCount(), collected.EdgeCount())

	// Non-fatal from here on: the description file is already complete.
	if opts.jsonPath != "" {
		if err := collected.ExportJSON(opts.jsonPath); err != nil {
			logger.Errorf("JSON export failed: %v", err)
		} else {
			printFile(opts.jsonPath)
		}
	}
	if opts.image != "" {
		if err := render.File(ctx, dotBuf.Bytes(), opts.image); err != nil {
			logger.Errorf("Image rendering failed: %v", err)
		} else {
			printFile(opts.image)
		}
	}
	return nil
}

// groupLabel renders a group index for console output.
func groupLabel(idx int) string {
	if idx == depgraph.Ungrouped {
		return "ungrouped"
	}
	return fmt.Sprintf("group %d", idx)
}
