// Package timeline implements the interval algebra underneath the fusion
// engine: gap-tolerant hysteresis merging of time intervals and label
// assignment by best temporal overlap.
//
// Both operations are pure functions over value types so every threshold can
// be exercised deterministically in tests.
package timeline
