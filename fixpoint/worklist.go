package fixpoint

import (
	"github.com/wolff09/tmrverify/encoding"
	"github.com/wolff09/tmrverify/verifcfg"
)

// remainingWork is the pending queue fed by post-image/interference steps
// and drained by the fixed-point loop, backed by the canonical store so a
// configuration already subsumed by one on the queue is never re-explored.
// Grounded on fixpoint.cpp's RemainingWork.
type remainingWork struct {
	store *encoding.Store
	queue []*verifcfg.Configuration
}

func newRemainingWork(store *encoding.Store) *remainingWork {
	return &remainingWork{store: store}
}

func (w *remainingWork) size() int  { return len(w.queue) }
func (w *remainingWork) done() bool { return len(w.queue) == 0 }

// add folds cfg into the store; if that changed the store (a genuinely new
// configuration, or a merge that widened an existing one), the canonical
// instance is queued for another post-image round.
func (w *remainingWork) add(cfg *verifcfg.Configuration) {
	changed, stored := w.store.Take(cfg)
	if changed {
		w.queue = append(w.queue, stored)
	}
}

func (w *remainingWork) addAll(cfgs []*verifcfg.Configuration) {
	for _, cfg := range cfgs {
		w.add(cfg)
	}
}

// pop removes and gives one pending configuration; only valid when !done().
func (w *remainingWork) pop() *verifcfg.Configuration {
	top := w.queue[len(w.queue)-1]
	w.queue = w.queue[:len(w.queue)-1]
	return top
}
