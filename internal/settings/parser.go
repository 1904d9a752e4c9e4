package settings

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Parser is the HCL-backed implementation of catalog.ArgumentParser.
type Parser struct{}

// NewParser creates a new settings parser.
func NewParser() *Parser {
	return &Parser{}
}

// field is one settable argument of a struct.
type field struct {
	name    string
	help    string
	index   []int
	ctyType cty.Type
}

// Parse applies settings to args, which must be a non-nil pointer to a
// struct. The usage text describes args as it was before parsing, so its
// defaults are the object's defaults. The first error encountered stops
// parsing.
func (p *Parser) Parse(args any, settings string) (string, error) {
	target, fields, err := bind(args)
	if err != nil {
		return "", err
	}
	usage := render(target, fields)

	pairs, err := split(settings)
	if err != nil {
		return usage, err
	}

	byName := make(map[string]*field, len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}

	seen := make(map[string]bool, len(pairs))
	for _, pr := range pairs {
		name := strings.ToLower(pr.name)
		f, ok := byName[name]
		if !ok {
			return usage, fmt.Errorf("unknown argument '%s'", pr.name)
		}
		if seen[name] {
			return usage, fmt.Errorf("argument '%s' specified more than once", pr.name)
		}
		seen[name] = true

		val, err := evaluate(pr.value)
		if err != nil {
			return usage, fmt.Errorf("argument '%s': %w", pr.name, err)
		}
		if err := assign(target, f, val); err != nil {
			return usage, fmt.Errorf("argument '%s': %w", pr.name, err)
		}
	}
	return usage, nil
}

// Usage describes the arguments of args without modifying it.
func (p *Parser) Usage(args any) string {
	target, fields, err := bind(args)
	if err != nil {
		return ""
	}
	return render(target, fields)
}

// bind collects the settable fields of the struct args points to. Fields
// whose Go type has no cty equivalent are left out.
func bind(args any) (reflect.Value, []*field, error) {
	v := reflect.ValueOf(args)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("settings target must be a non-nil pointer to a struct, got %T", args)
	}
	target := v.Elem()
	t := target.Type()

	var fields []*field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name := strings.Split(sf.Tag.Get("arg"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		ty, err := gocty.ImpliedType(reflect.Zero(sf.Type).Interface())
		if err != nil {
			continue
		}
		fields = append(fields, &field{
			name:    strings.ToLower(name),
			help:    sf.Tag.Get("help"),
			index:   sf.Index,
			ctyType: ty,
		})
	}
	return target, fields, nil
}

// evaluate parses a single value. A bare identifier or traversal is taken as
// its literal text.
func evaluate(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "settings", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if _, travDiags := hcl.AbsTraversalForExpr(expr); !travDiags.HasErrors() {
		return cty.StringVal(src), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

func assign(target reflect.Value, f *field, val cty.Value) error {
	converted, err := convert.Convert(val, f.ctyType)
	if err != nil {
		return fmt.Errorf("cannot use %s value as %s: %w", val.Type().FriendlyName(), f.ctyType.FriendlyName(), err)
	}
	if converted.IsNull() {
		return fmt.Errorf("null is not allowed")
	}
	return gocty.FromCtyValue(converted, target.FieldByIndex(f.index).Addr().Interface())
}

// render builds the usage text, one line per field.
func render(target reflect.Value, fields []*field) string {
	if len(fields) == 0 {
		return "  (no arguments)\n"
	}

	heads := make([]string, len(fields))
	width := 0
	for i, f := range fields {
		heads[i] = fmt.Sprintf("%s=<%s>", f.name, f.ctyType.FriendlyName())
		width = max(width, len(heads[i]))
	}

	var b strings.Builder
	for i, f := range fields {
		line := fmt.Sprintf("  %-*s", width, heads[i])
		if f.help != "" {
			line += "  " + f.help
		}
		if fv := target.FieldByIndex(f.index); !fv.IsZero() {
			line += fmt.Sprintf(" (default %s)", formatDefault(fv))
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatDefault(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return fmt.Sprintf("%q", v.String())
	}
	return fmt.Sprintf("%v", v.Interface())
}
