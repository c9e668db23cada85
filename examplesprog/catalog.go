package examplesprog

import (
	"fmt"

	"github.com/wolff09/tmrverify/observer"
	"github.com/wolff09/tmrverify/options"
	"github.com/wolff09/tmrverify/program"
)

// Scenario names a reference program cmd/tmrverify's --program flag can
// select, bundling its constructor with the memory model and expectation
// spec.md §8 states for it.
type Scenario struct {
	Name        string
	Description string
	Memory      options.Memory
	Expect      options.Expectation
	Build       func() (*program.Program, *observer.Observer, *observer.Observer, error)
}

// Catalog lists spec.md §8's six named scenarios plus two bonus programs
// (DESIGN.md's examplesprog entry): the EBR ring buffer, and a second
// Michael-Scott summary-mode variant whose summary genuinely
// over-approximates its body rather than repeating it verbatim. Every
// program this package can build, in the order the spec introduces them.
func Catalog() []Scenario {
	return []Scenario{
		{
			Name:        "coarse-queue",
			Description: "sentinel-node queue guarded by a coarse lock (Atomic blocks, no CAS)",
			Memory:      options.GarbageCollected,
			Expect:      options.ExpectSuccess,
			Build:       CoarseQueue,
		},
		{
			Name:        "treiber-stack-hp",
			Description: "Treiber stack, pop guarded by a hazard pointer before CAS",
			Memory:      options.HazardPointers,
			Expect:      options.ExpectSuccess,
			Build:       func() (*program.Program, *observer.Observer, *observer.Observer, error) { return TreiberStack(true) },
		},
		{
			Name:        "treiber-stack-unguarded",
			Description: "Treiber stack, pop CASes a stale read with no hazard guard",
			Memory:      options.HazardPointers,
			Expect:      options.ExpectFail,
			Build:       func() (*program.Program, *observer.Observer, *observer.Observer, error) { return TreiberStack(false) },
		},
		{
			Name:        "michael-scott-queue-summary",
			Description: "Michael-Scott queue with an identical body/summary pair (CHK-MIMIC)",
			Memory:      options.GarbageCollected,
			Expect:      options.ExpectSuccess,
			Build:       MichaelScottQueue,
		},
		{
			Name:        "michael-scott-queue-summary-approx",
			Description: "Michael-Scott queue whose enq summary drops the predecessor-link write (CHK-MIMIC, non-trivial)",
			Memory:      options.GarbageCollected,
			Expect:      options.ExpectSuccess,
			Build:       MichaelScottQueueApproxSummary,
		},
		{
			Name:        "dglm-queue",
			Description: "DGLM queue, hazard-pointer-protected dequeue",
			Memory:      options.HazardPointers,
			Expect:      options.ExpectSuccess,
			Build:       DGLMQueue,
		},
		{
			Name:        "retire-shared-reachable",
			Description: "retires a cell still reachable from a shared global",
			Memory:      options.ManualMemory,
			Expect:      options.ExpectFail,
			Build:       RetireSharedReachable,
		},
		{
			Name:        "ebr-ring-buffer",
			Description: "quiescent-region discipline around a single shared read",
			Memory:      options.GarbageCollected,
			Expect:      options.ExpectSuccess,
			Build:       EBRRingBuffer,
		},
	}
}

// Lookup finds a Scenario by name, as cmd/tmrverify's --program flag does.
func Lookup(name string) (Scenario, error) {
	for _, s := range Catalog() {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("examplesprog: no such scenario %q", name)
}
