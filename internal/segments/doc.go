// Package segments defines the shared segment abstraction consumed by the
// fusion engine and the JSON codecs for upstream annotation files.
//
// Every upstream producer (voice activity, diarization, speech recognition)
// is modeled as "an ordered list of time-stamped, optionally labeled
// segments" so downstream stages never branch on which analyzer produced a
// span.
package segments
