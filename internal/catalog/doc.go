// Package catalog provides the component catalog: a registry that lets
// independently compiled packages advertise instantiatable components under
// case-insensitive names and capability signatures, and lets callers look them
// up and create instances of them.
//
// # Registration
//
// Component packages expose a Module whose Components method returns one
// Declaration per component. The host program passes every module to
// Catalog.RegisterModule, usually from its entry point:
//
//	cat := catalog.New(catalog.WithLogger(logger), catalog.WithArgumentParser(settings.NewParser()))
//	cat.RegisterModule(&arith.Module{}, &filter.Module{})
//
// While scanning a module, the catalog resolves how each component is built by
// probing the declared creation functions (a zero-argument accessor, a
// constructor, or a factory, each optionally taking a leading
// context.Context) against the declared parameter types. Declarations that
// cannot be resolved, and aliases already taken by an earlier registration,
// are logged and skipped; they never abort a scan.
//
// # Lookup and creation
//
// A component is addressed by a (name, signature) key. Names are trimmed and
// compared case-insensitively. The first descriptor registered for a key keeps
// it for the lifetime of the catalog.
//
//	inst, err := cat.CreateInstance(ctx, operator.SignatureFilter, "threshold", "cutoff=0.9")
//
// Settings text is handed to the configured ArgumentParser, which populates a
// default-constructed argument object before the component is created.
//
// # Concurrency
//
// All read paths are lock-free. Registering a module's components is
// serialized through a single mutex that is never held while module code
// runs, so a Components method may itself call RegisterModule.
package catalog
