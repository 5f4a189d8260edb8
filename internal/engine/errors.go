package engine

import "errors"

// ErrResponseSchema means the oracle response was malformed or violated
// the item/result contract. Never auto-repaired: fabricating a missing
// unitPrice would corrupt downstream totals, so the whole call fails.
var ErrResponseSchema = errors.New("engine: response schema violation")

// ErrDomainInvariant means a structurally valid response broke a domain
// rule the engine cannot reconcile (brand lock violated, quantity <= 0).
var ErrDomainInvariant = errors.New("engine: domain invariant violation")
