// Package verifcfg implements layer L5: Configuration, the abstract state
// the fixpoint driver explores. A configuration pairs a program-counter
// tuple with an owned shape and the per-cell auxiliary registers that
// track ownership, validity, and SMR bookkeeping alongside the relational
// information shape.Shape already carries (spec.md §4.2/§4.4's Cfg).
package verifcfg
