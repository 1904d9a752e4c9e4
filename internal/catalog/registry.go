package catalog

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// Registry stores descriptors and the indices over them. It only grows: once
// a key resolves to a descriptor it keeps resolving to it.
//
// Reads never take a lock. The descriptor list and signature list are
// copy-on-write snapshots published atomically; the key index is a sync.Map
// written with LoadOrStore so the first registration for a key wins.
type Registry struct {
	logger  *slog.Logger
	scanner *scanner

	writeMu     sync.Mutex // serializes snapshot publication
	descriptors atomic.Pointer[[]*Descriptor]
	signatures  atomic.Pointer[[]Signature]
	sigSet      sync.Map // Signature -> struct{}
	byKey       sync.Map // Key -> *Descriptor
}

func newRegistry(logger *slog.Logger) *Registry {
	r := &Registry{logger: logger}
	r.descriptors.Store(&[]*Descriptor{})
	r.signatures.Store(&[]Signature{})
	r.scanner = newScanner(r, logger)
	return r
}

// Register adds a descriptor to the flat list, records its signatures, and
// maps every (alias, signature) pair to it. Pairs already mapped to another
// descriptor keep their existing mapping; each collision is logged and
// returned as a *DiscoveryError. Register never panics on collisions.
func (r *Registry) Register(d *Descriptor, aliases []string) []error {
	if d == nil {
		return nil
	}

	r.writeMu.Lock()
	current := *r.descriptors.Load()
	if !slices.Contains(current, d) {
		next := make([]*Descriptor, len(current), len(current)+1)
		copy(next, current)
		next = append(next, d)
		r.descriptors.Store(&next)
	}
	for _, sig := range d.signatures {
		if _, loaded := r.sigSet.LoadOrStore(sig, struct{}{}); loaded {
			continue
		}
		sigs := *r.signatures.Load()
		nextSigs := make([]Signature, len(sigs), len(sigs)+1)
		copy(nextSigs, sigs)
		nextSigs = append(nextSigs, sig)
		r.signatures.Store(&nextSigs)
	}
	r.writeMu.Unlock()

	var warnings []error
	for _, sig := range d.signatures {
		for _, alias := range aliases {
			key := NewKey(alias, sig)
			existing, loaded := r.byKey.LoadOrStore(key, d)
			if !loaded || existing == d {
				continue
			}
			cur := existing.(*Descriptor)
			r.logger.Warn("Can't map component name, already mapped to another component.",
				"name", alias,
				"signature", string(sig),
				"component", d.component.String(),
				"existing", cur.component.String(),
			)
			warnings = append(warnings, &DiscoveryError{
				Name:   alias,
				Reason: fmt.Sprintf("signature %s already mapped to '%s' (%v)", sig, cur.Name(), cur.component),
			})
		}
		r.logger.Debug("Registered component.", "name", d.Name(), "signature", string(sig), "strategy", d.strategy.String())
	}
	return warnings
}

func (r *Registry) load(key Key) (*Descriptor, bool) {
	v, ok := r.byKey.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Descriptor), true
}

// FindByKey returns the descriptor registered for (alias, sig). On a miss it
// waits for a commit in flight and looks again.
func (r *Registry) FindByKey(alias string, sig Signature) (*Descriptor, bool) {
	key := NewKey(alias, sig)
	if d, ok := r.load(key); ok {
		return d, true
	}
	r.scanner.settle()
	return r.load(key)
}

// AllDescriptors returns every unique descriptor in registration order.
func (r *Registry) AllDescriptors() []*Descriptor {
	return slices.Clone(*r.descriptors.Load())
}

// AllSignatures returns every signature seen so far, in first-seen order.
func (r *Registry) AllSignatures() []Signature {
	return slices.Clone(*r.signatures.Load())
}

// FindByAlias returns the descriptors that list name among their aliases,
// across all signatures.
func (r *Registry) FindByAlias(name string) []*Descriptor {
	name = Normalize(name)
	return r.filter(func(d *Descriptor) bool { return d.hasAlias(name) })
}

// FindBySignature returns the descriptors registered under sig.
func (r *Registry) FindBySignature(sig Signature) []*Descriptor {
	return r.filter(func(d *Descriptor) bool { return d.HasSignature(sig) })
}

// FindByArgumentTypeAndSignature returns the descriptors registered under sig
// whose argument type is exactly argType. A nil argType selects components
// without arguments.
func (r *Registry) FindByArgumentTypeAndSignature(argType reflect.Type, sig Signature) []*Descriptor {
	return r.filter(func(d *Descriptor) bool { return d.argType == argType && d.HasSignature(sig) })
}

// filter scans the flat list.
func (r *Registry) filter(keep func(*Descriptor) bool) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.AllDescriptors() {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
