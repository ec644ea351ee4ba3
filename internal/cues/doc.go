// Package cues builds the final subtitle cue list from the fused dialogue
// stream: merging adjacent segments under readability budgets, extending
// cue timings toward the target reading rate, laying text out into lines,
// and serializing to SubRip format.
package cues
