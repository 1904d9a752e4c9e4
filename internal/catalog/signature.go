package catalog

import "strings"

// Signature is a capability marker grouping components that a caller role can
// request interchangeably. By convention the value starts with "Signature".
type Signature string

// SignatureDefault is used by queries that do not name a signature.
const SignatureDefault Signature = "SignatureDefault"

const signaturePrefix = "Signature"

// SignatureDisplayName returns the signature name without the conventional
// "Signature" prefix, for UI purposes. A signature that consists only of the
// prefix, or lacks it, is returned unchanged.
func SignatureDisplayName(sig Signature) string {
	kind := string(sig)
	if len(kind) > len(signaturePrefix) && strings.HasPrefix(kind, signaturePrefix) {
		return kind[len(signaturePrefix):]
	}
	return kind
}

// DisplayName is shorthand for SignatureDisplayName(s).
func (s Signature) DisplayName() string {
	return SignatureDisplayName(s)
}

// Key addresses a descriptor in the index: a normalized alias paired with a
// signature.
type Key struct {
	Name      string
	Signature Signature
}

// NewKey builds a key, normalizing the name.
func NewKey(name string, sig Signature) Key {
	return Key{Name: Normalize(name), Signature: sig}
}

// Normalize trims surrounding whitespace and lower-cases an alias. It is
// applied to every alias at registration and to every name at lookup.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
