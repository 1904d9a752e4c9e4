// Package settings parses component settings text into argument objects.
//
// Settings text is a whitespace-separated list of name=value pairs:
//
//	cutoff=0.9 inclusive=true labels=["a", "b"] prefix="my app"
//
// Each value is an HCL expression: numbers, true/false, quoted strings,
// lists and objects. A bare word such as `name=foo` is taken literally as the
// string "foo". Quotes, brackets and braces group whitespace, and spaces
// around '=' are ignored.
//
// Values are bound to the exported fields of the argument struct. The field
// name comes from the `arg` tag, or the lower-cased Go field name when the tag
// is absent; `arg:"-"` hides a field. A `help` tag documents the field in the
// usage text. Conversion to the field's Go type goes through cty, so any type
// gocty can infer is supported.
package settings
