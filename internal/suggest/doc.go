// Package suggest ranks near-miss identifiers for "did you mean" diagnostics.
//
// Names are compared after normalization (camel-case aware, case-folded,
// separators removed) using edit distance on both the simple and the
// qualified spelling.
package suggest
