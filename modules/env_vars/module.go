// Package env_vars provides a source that reads the process environment.
package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/internal/ctxlog"
	"github.com/specialistvlad/componentcatalog/modules/operator"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// ModuleID implements catalog.Module.
func (m *Module) ModuleID() string { return "env_vars" }

// Components implements catalog.Module.
func (m *Module) Components() []catalog.Declaration {
	return []catalog.Declaration{{
		Component:  operator.SourceType,
		Loader:     catalog.TypeOf[*Source](),
		Signatures: []catalog.Signature{operator.SignatureSource},
		LoadNames:  []string{"env", "environment"},
		Args:       catalog.TypeOf[*Args](),
		Create:     Create,
		UserName:   "Environment",
		Summary:    "Reads process environment variables.",
	}}
}

// Args configures the environment source.
type Args struct {
	Prefix string `arg:"prefix" help:"Only variables starting with this prefix are read."`
	Strip  bool   `arg:"strip" help:"Remove the prefix from variable names."`
}

// Source holds a snapshot of the environment taken at creation time.
type Source struct {
	prefix string
	all    map[string]string
}

// Create snapshots the environment variables matching args.
func Create(ctx context.Context, args *Args) (operator.Source, error) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], args.Prefix) {
			continue
		}
		key := pair[0]
		if args.Strip {
			key = strings.TrimPrefix(key, args.Prefix)
		}
		if key == "" {
			continue
		}
		envMap[key] = pair[1]
	}

	ctxlog.FromContext(ctx).Debug("Read environment.", "prefix", args.Prefix, "count", len(envMap))
	return &Source{prefix: args.Prefix, all: envMap}, nil
}

// Records returns a copy of the snapshot.
func (s *Source) Records() map[string]string {
	out := make(map[string]string, len(s.all))
	for k, v := range s.all {
		out[k] = v
	}
	return out
}

func (s *Source) String() string {
	if s.prefix == "" {
		return "env(*)"
	}
	return "env(" + s.prefix + "*)"
}
