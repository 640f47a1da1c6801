// Package builtin ships a small set of filesystem sanity checks and
// registers them with a registry. They are ordinary engine consumers: the
// CLI uses them so a stock binary can run useful pipelines, and they double
// as reference process implementations.
package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/athena-sanity/athena/internal/param"
	"github.com/athena-sanity/athena/internal/process"
	"github.com/athena-sanity/athena/internal/registry"
)

// RegisterAll registers every builtin process under its qualified
// identifier.
func RegisterAll(reg *registry.Registry) error {
	registrations := map[string]registry.Factory{
		"builtin.pathExists":   func() process.Process { return &PathExists{} },
		"builtin.globCount":    func() process.Process { return &GlobCount{} },
		"builtin.fileSizeOver": func() process.Process { return &FileSizeCeiling{} },
	}
	for id, factory := range registrations {
		if err := reg.RegisterProcess(id, factory); err != nil {
			return err
		}
	}
	return nil
}

// PathExists checks that a path is present on disk.
type PathExists struct{}

func (PathExists) DeclareParameters() []param.Parameter {
	path, err := param.NewString("path", ".")
	if err != nil {
		panic(err)
	}
	return []param.Parameter{path}
}

func (PathExists) Check(_ context.Context, run *process.Run) error {
	path := run.String("path")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			run.Fail(path, "path does not exist")
			return nil
		}
		return err
	}
	return nil
}

// GlobCount checks that the number of files matching a glob pattern falls
// within declared bounds.
type GlobCount struct{}

func (GlobCount) DeclareParameters() []param.Parameter {
	pattern, err := param.NewString("pattern", "*")
	if err != nil {
		panic(err)
	}
	min, err := param.NewInt("min", 0, 0, 1<<31)
	if err != nil {
		panic(err)
	}
	max, err := param.NewInt("max", 1<<31, 0, 1<<31)
	if err != nil {
		panic(err)
	}
	return []param.Parameter{pattern, min, max}
}

func (GlobCount) Check(_ context.Context, run *process.Run) error {
	pattern := run.String("pattern")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}

	count := int64(len(matches))
	if count < run.Int("min") {
		run.Fail(pattern, fmt.Sprintf("%d match(es), expected at least %d", count, run.Int("min")))
	}
	if count > run.Int("max") {
		run.Fail(pattern, fmt.Sprintf("%d match(es), expected at most %d", count, run.Int("max")))
	}
	return nil
}

// FileSizeCeiling warns or fails for files growing past a size ceiling. The
// fix deletes offending files when deletion is enabled.
type FileSizeCeiling struct{}

func (FileSizeCeiling) DeclareParameters() []param.Parameter {
	pattern, err := param.NewString("pattern", "*")
	if err != nil {
		panic(err)
	}
	maxBytes, err := param.NewInt("maxBytes", 10<<20, 1, 1<<62)
	if err != nil {
		panic(err)
	}
	return []param.Parameter{pattern, maxBytes, param.NewBool("delete", false)}
}

func (FileSizeCeiling) offenders(run *process.Run) ([]string, error) {
	matches, err := filepath.Glob(run.String("pattern"))
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", run.String("pattern"), err)
	}

	var out []string
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Size() > run.Int("maxBytes") {
			out = append(out, path)
		}
	}
	return out, nil
}

func (f FileSizeCeiling) Check(_ context.Context, run *process.Run) error {
	offenders, err := f.offenders(run)
	if err != nil {
		return err
	}
	for _, path := range offenders {
		run.Fail(path, fmt.Sprintf("exceeds %d bytes", run.Int("maxBytes")))
	}
	return nil
}

func (f FileSizeCeiling) Fix(_ context.Context, run *process.Run) error {
	offenders, err := f.offenders(run)
	if err != nil {
		return err
	}
	for _, path := range offenders {
		if !run.Bool("delete") {
			run.Warn(path, "over the ceiling; deletion is disabled")
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}
