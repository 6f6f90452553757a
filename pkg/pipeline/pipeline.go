// Package pipeline runs the fetch, load, transform and write stages that
// turn one source model into its lighting variants.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/lumen/pkg/fetch"
	"github.com/taigrr/lumen/pkg/scene"
	"github.com/taigrr/lumen/pkg/variant"
)

// Result describes one written variant.
type Result struct {
	Variant  string
	Path     string
	Bytes    int
	Selected []string
	Fallback bool
	Boosted  int
	Warnings []error
}

// Runner holds the collaborators and settings of a run.
type Runner struct {
	Client   *fetch.Client
	Logger   *slog.Logger
	OutDir   string
	Keywords []string
	Variants []variant.Spec
}

// NewRunner returns a runner producing the default off and on variants in
// the working directory.
func NewRunner() *Runner {
	return &Runner{
		Client:   fetch.NewClient(),
		Logger:   slog.Default(),
		OutDir:   ".",
		Keywords: variant.DefaultKeywords,
		Variants: []variant.Spec{variant.Off(), variant.On()},
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Load fetches and decodes the source document.
func (r *Runner) Load(ctx context.Context, source string) (*gltf.Document, error) {
	log := r.logger()

	log.Info("downloading source model", "source", source)
	data, err := fetch.Source(ctx, r.Client, source)
	if err != nil {
		return nil, err
	}
	log.Debug("downloaded", "bytes", len(data))

	doc, err := scene.Decode(data)
	if err != nil {
		return nil, err
	}
	log.Info("loaded", "source", filepath.Base(source), "stats", scene.Summarize(doc).String())
	return doc, nil
}

// Run produces every configured variant from source, in order. The first
// fetch, decode, clone or write failure stops the run; the results written
// so far are returned with it.
func (r *Runner) Run(ctx context.Context, source string) ([]Result, error) {
	log := r.logger()

	base, err := r.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	if r.OutDir != "" {
		if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
			return nil, &scene.WriteError{Path: r.OutDir, Err: err}
		}
	}

	results := make([]Result, 0, len(r.Variants))
	for _, spec := range r.Variants {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := r.produce(base, spec)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		log.Info("wrote variant", "variant", spec.Name, "path", res.Path, "bytes", res.Bytes)
	}

	log.Info("done", "variants", len(results))
	return results, nil
}

func (r *Runner) produce(base *gltf.Document, spec variant.Spec) (Result, error) {
	log := r.logger()

	log.Info("creating variant", "variant", spec.Name)
	doc, err := scene.Clone(base)
	if err != nil {
		return Result{}, fmt.Errorf("variant %s: %w", spec.Name, err)
	}

	keywords := r.Keywords
	if keywords == nil {
		keywords = variant.DefaultKeywords
	}
	rep := variant.Apply(doc, spec, keywords)
	if rep.Fallback {
		log.Debug("no material names matched, editing all materials", "variant", spec.Name)
	}
	for _, w := range rep.Warnings {
		log.Warn("material edit skipped", "variant", spec.Name, "err", w)
	}

	path := filepath.Join(r.OutDir, spec.Output)
	n, err := scene.Write(doc, path)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Variant:  spec.Name,
		Path:     path,
		Bytes:    n,
		Selected: rep.Selected,
		Fallback: rep.Fallback,
		Boosted:  rep.Boosted,
		Warnings: rep.Warnings,
	}, nil
}
