package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
)

// ComponentInfo is the printable view of a descriptor.
type ComponentInfo struct {
	Name            string   `json:"name" yaml:"name"`
	Aliases         []string `json:"aliases" yaml:"aliases"`
	Signatures      []string `json:"signatures" yaml:"signatures"`
	Strategy        string   `json:"strategy" yaml:"strategy"`
	Component       string   `json:"component" yaml:"component"`
	Arguments       string   `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	ExtraParams     []string `json:"extra_params,omitempty" yaml:"extra_params,omitempty"`
	RequiresContext bool     `json:"requires_context" yaml:"requires_context"`
	UserName        string   `json:"user_name,omitempty" yaml:"user_name,omitempty"`
	Summary         string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	DocName         string   `json:"doc_name,omitempty" yaml:"doc_name,omitempty"`
	Hidden          bool     `json:"hidden" yaml:"hidden"`
	Usage           string   `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// SignatureInfo is the printable view of a signature.
type SignatureInfo struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Components  int    `json:"components" yaml:"components"`
}

func (a *App) info(d *catalog.Descriptor, withUsage bool) ComponentInfo {
	ci := ComponentInfo{
		Name:            d.Name(),
		Aliases:         d.LoadNames(),
		Strategy:        d.Strategy().String(),
		Component:       d.ComponentType().String(),
		RequiresContext: d.RequiresContext(),
		UserName:        d.UserName(),
		Summary:         d.Summary(),
		DocName:         d.DocName(),
		Hidden:          d.IsHidden(),
	}
	for _, sig := range d.Signatures() {
		ci.Signatures = append(ci.Signatures, catalog.SignatureDisplayName(sig))
	}
	if t := d.ArgType(); t != nil {
		ci.Arguments = t.String()
	}
	for _, t := range d.ExtraParamTypes() {
		ci.ExtraParams = append(ci.ExtraParams, t.String())
	}
	if withUsage {
		ci.Usage = a.catalog.Usage(d)
	}
	return ci
}

// ResolveSignature maps user input to a registered signature. Both the full
// name and the display name are accepted, case-insensitively.
func (a *App) ResolveSignature(name string) (catalog.Signature, error) {
	name = strings.TrimSpace(name)
	for _, sig := range a.catalog.GetAllSignatures() {
		if strings.EqualFold(string(sig), name) || strings.EqualFold(sig.DisplayName(), name) {
			return sig, nil
		}
	}
	return "", fmt.Errorf("unknown signature '%s'", name)
}

// List returns the registered components in registration order. sig limits
// the result to one signature when non-empty; hidden components are included
// only when all is set.
func (a *App) List(sig string, all bool) ([]ComponentInfo, error) {
	var descs []*catalog.Descriptor
	if sig == "" {
		descs = a.catalog.GetAllComponents()
	} else {
		s, err := a.ResolveSignature(sig)
		if err != nil {
			return nil, err
		}
		descs = a.catalog.FindBySignature(s)
	}

	out := make([]ComponentInfo, 0, len(descs))
	for _, d := range descs {
		if d.IsHidden() && !all {
			continue
		}
		out = append(out, a.info(d, false))
	}
	return out, nil
}

// Signatures returns every registered signature with its component count.
func (a *App) Signatures() []SignatureInfo {
	sigs := a.catalog.GetAllSignatures()
	out := make([]SignatureInfo, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, SignatureInfo{
			Name:        string(sig),
			DisplayName: sig.DisplayName(),
			Components:  len(a.catalog.FindBySignature(sig)),
		})
	}
	return out
}

// Describe returns the components having name as an alias, including their
// usage text. With a non-empty sig the lookup is exact.
func (a *App) Describe(name, sig string) ([]ComponentInfo, error) {
	if sig != "" {
		s, err := a.ResolveSignature(sig)
		if err != nil {
			return nil, err
		}
		d, ok := a.catalog.FindComponent(name, s)
		if !ok {
			return nil, &catalog.UnknownComponentError{Name: name, Signature: s}
		}
		return []ComponentInfo{a.info(d, true)}, nil
	}

	descs := a.catalog.FindByAlias(name)
	if len(descs) == 0 {
		return nil, &catalog.UnknownComponentError{Name: name}
	}
	out := make([]ComponentInfo, 0, len(descs))
	for _, d := range descs {
		out = append(out, a.info(d, true))
	}
	return out, nil
}

// Create instantiates a component that takes no extra parameters.
func (a *App) Create(ctx context.Context, sig, name, settings string) (any, error) {
	s, err := a.ResolveSignature(sig)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Creating component.", "name", name, "signature", string(s))
	return a.catalog.CreateInstance(a.Context(ctx), s, name, settings)
}
