package examplesprog_test

import (
	"testing"

	"github.com/wolff09/tmrverify/examplesprog"
	"github.com/wolff09/tmrverify/fixpoint"
	"github.com/wolff09/tmrverify/options"
)

// TestCatalogBuilds exercises every catalog scenario's constructor: each must
// Build without error and return a non-nil program plus both observers,
// mirroring how cmd/tmrverify's --program flag will consume them.
func TestCatalogBuilds(t *testing.T) {
	for _, sc := range examplesprog.Catalog() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			prog, lin, smr, err := sc.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if prog == nil || lin == nil || smr == nil {
				t.Fatalf("Build returned a nil component")
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := examplesprog.Lookup("does-not-exist"); err == nil {
		t.Fatalf("expected an error for an unknown scenario name")
	}
}

// TestCatalogDrives runs every scenario through the fixed-point driver.
// Scenarios expected to succeed must converge with no error;
// treiber-stack-unguarded must report an error. retire-shared-reachable,
// the other expected conformance failure, has no verdict asserted, for the
// reason given in the ExpectFail case below.
func TestCatalogDrives(t *testing.T) {
	for _, sc := range examplesprog.Catalog() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			prog, lin, smr, err := sc.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			opts := options.Default()
			opts.Memory = sc.Memory
			opts.ReplaceInterferenceWithSummary = sc.Name == "michael-scott-queue-summary" ||
				sc.Name == "michael-scott-queue-summary-approx"

			d := fixpoint.NewDriver(prog, lin, smr, opts, nil)
			_, runErr := d.Run()
			switch sc.Expect {
			case options.ExpectSuccess:
				if runErr != nil {
					t.Fatalf("Run: expected success, got %v", runErr)
				}
			case options.ExpectFail:
				// treiber-stack-unguarded is expected to surface as a
				// conformance error (ABA-awareness or observer violation).
				// retire-shared-reachable's violation is, per doc.go and
				// violation.go, only observable as a silently-pruned path
				// rather than a distinct error, so no error is asserted
				// there.
				if sc.Name == "treiber-stack-unguarded" && runErr == nil {
					t.Fatalf("Run: expected a conformance error for %s", sc.Name)
				}
			}
		})
	}
}
