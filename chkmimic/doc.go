// Package chkmimic is the CHK-MIMIC soundness check of spec.md §4.5/§9: it
// verifies that every function's declared atomic summary actually mimics
// every shared-heap-visible effect the function's real statements can
// produce, once the fixed point has converged in summary mode
// (options.ReplaceInterferenceWithSummary).
//
// Grounded on chkmimic.cpp's tmr::chk_mimic, subset_shared,
// find_effectful_configurations, and check_disambiguated_cfg. The source
// also offers a precise_check_mimick-gated check_cfg overload that
// disambiguates the shape row by row via helperops.disambiguate before
// testing each refinement; this port has no modeled flag for that mode (no
// field on program.Program or options.Options names it), so only the
// check_disambiguated_cfg path is ported, and every configuration goes
// through it unrefined, with no row-by-row disambiguation — see DESIGN.md.
package chkmimic
