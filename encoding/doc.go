// Package encoding implements layer L7: the canonical configuration store
// fixpoint's worklist de-duplicates against (spec.md §4.7). Store buckets
// configurations two levels deep — a coarse key order groups configurations
// that could ever be merged, a finer full order picks out the exact bucket
// a new configuration augments — then Take folds a new configuration into
// its bucket by a pointwise union of the shape and a conjunction of the
// registers that only ever narrow (never widen) what is known about a
// cell. Grounded on the original implementation's encoding.hpp/.cpp
// cfg_comparator/key_comparator/Encoding::take.
package encoding
