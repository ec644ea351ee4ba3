// Package classify detects hallucinated and lyric runs in transcript
// segments and rewrites them: lyric runs collapse into a single spanning
// segment, hallucination runs are substituted from an alternate transcript
// or dropped.
package classify
