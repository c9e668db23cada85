// Package abaaware is the ABA-awareness check of spec.md §4.9/§9: for every
// equality test in the fixed point that compares a thread-local pointer
// against a shared one while exactly one side is validated, it confirms a
// thread that retries the comparison loop only does so after the shared
// structure has genuinely changed underneath it (no silent ABA), and that a
// thread escaping the retry loop could not have taken the comparison's true
// branch instead.
//
// Grounded on chkaware.cpp's tmr::chk_aba_awareness, is_aba_prone,
// prune_reuse, mk_continuations, chk_retry, and chk_noretry.
//
// Three representational gaps from the source are carried as documented
// simplifications rather than invented state:
//   - guard0state/guard1state are a multi-valued SMR protection automaton
//     in the source (its allowed_retry_state permits exactly the "d"->"s0"
//     and "dg"->"g" transitions on the compared variable during a retry);
//     this port's Guard0/Guard1 are plain booleans (see post/hazard.go), so
//     the compared variable's guard flags are left unconstrained across a
//     retry rather than checked against a state machine this port does not
//     have, while every other local's guard flags must still match exactly.
//   - the source's Cfg additionally carries a `seen` register this port's
//     Configuration has no analogue for; chk_retry's equality check on it
//     is not ported.
//   - chk_noretry's call `post_branch(ec, 0)` passes a null Statement
//     pointer, which filters for post-images where the thread returned —
//     contradicting the surrounding comment and the variable name
//     (posttrue). This looks like a latent bug in the original: this port
//     instead filters for post-images that take the Ite's true branch,
//     which is what "ensure no-retry shapes cannot be contained in the
//     true-branch shapes" actually requires.
package abaaware
