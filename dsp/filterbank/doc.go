// Package filterbank implements a per-note colour filter bank.
//
// The bank runs one narrow peaking biquad for every note from C0 to B8
// and mixes their outputs according to 12 pitch-class gains, so a scale
// can be "let through" while all other pitches cancel against the input.
package filterbank
