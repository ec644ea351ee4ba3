// Package textutil provides text processing utilities for normalization,
// fingerprinting, similarity, and filename sanitization.
//
// The primary use cases are:
//   - Normalizing segment text so repeated utterances compare equal
//   - Creating token-based fingerprints for near-duplicate refrain scoring
//   - Sanitizing output basenames for safe filesystem use
//
// Fingerprints use term frequency vectors normalized for efficient
// comparison. Tokenization lowercases text, splits on non-alphanumeric
// characters, and filters tokens shorter than 3 characters.
package textutil
