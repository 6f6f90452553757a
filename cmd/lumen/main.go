// lumen - bake light on/off variants of a glTF model.
// Downloads a binary glTF model and writes two copies that differ only in
// emissive material state:
//
//	light_off.glb  - lamp materials extinguished (emissive black)
//	light_on.glb   - lamp materials glowing warm white, emissive strength 2.5x
//
// Materials whose names contain bulb, glass, emissive, lamp or light are
// edited; if none match, every material is. Punctual lights are removed
// from both outputs so the glow comes from material colour alone.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/fetch"
	"github.com/taigrr/lumen/pkg/pipeline"
)

var version = "dev"

type options struct {
	configPath string
	source     string
	outDir     string
	strength   float64
	keywords   []string
	verbose    bool
	quiet      bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "lumen",
		Short: "Bake light on/off variants of a glTF model",
		Long: "lumen downloads a binary glTF model and writes light_off.glb and light_on.glb,\n" +
			"two copies that differ only in the emissive state of their lamp materials.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML file with source, outputs and colours")
	f.StringVarP(&opts.source, "source", "s", "", "URL or path of the source model")
	f.StringVarP(&opts.outDir, "out-dir", "o", "", "Directory for the output files")
	f.Float64Var(&opts.strength, "strength", 0, "Emissive strength of the on variant (0 disables the extension)")
	f.StringSliceVarP(&opts.keywords, "keyword", "k", nil, "Material name keyword, repeatable (replaces the defaults)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Show debug output")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Only show errors")

	return cmd
}

// resolveConfig layers the config file, then explicitly set flags, over the
// defaults.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Source = opts.source
	}
	if f.Changed("out-dir") {
		cfg.OutDir = opts.outDir
	}
	if f.Changed("strength") {
		cfg.On.Strength = opts.strength
	}
	if f.Changed("keyword") {
		cfg.Keywords = opts.keywords
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// levelFromFlags maps verbosity flags to a log level. Verbose wins over
// quiet.
func levelFromFlags(verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run(ctx context.Context, cfg config.Config, opts options) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromFlags(opts.verbose, opts.quiet),
	}))

	runner := &pipeline.Runner{
		Client:   fetch.NewClient(),
		Logger:   logger,
		OutDir:   cfg.OutDir,
		Keywords: cfg.Keywords,
		Variants: cfg.Variants(),
	}

	results, err := runner.Run(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("bake variants: %w", err)
	}

	if !opts.quiet {
		fmt.Fprint(os.Stdout, summary(results))
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C542"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD4FF"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8A65"))
)

// summary renders one line per written variant.
func summary(results []pipeline.Result) string {
	var b strings.Builder
	for _, r := range results {
		selected := strings.Join(r.Selected, ", ")
		if r.Fallback {
			selected = "all materials"
		}
		line := fmt.Sprintf("%s %s %s",
			titleStyle.Render(fmt.Sprintf("%-4s", r.Variant)),
			pathStyle.Render(r.Path),
			dimStyle.Render(fmt.Sprintf("(%d bytes, edited: %s)", r.Bytes, selected)),
		)
		if len(r.Warnings) > 0 {
			line += " " + warnStyle.Render(fmt.Sprintf("%d warnings", len(r.Warnings)))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
