package cues

import (
	"regexp"
	"strings"

	"subfuse/internal/segments"
)

// Advertisement and credit patterns commonly injected into community
// subtitle transcripts. Matched case-insensitively against segment text.
var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// StripAdvertisements removes advertisement and credit segments from a
// transcript, returning the surviving segments and the number removed.
// Applied to alternate transcripts before they are used for hallucination
// substitution, so promotional text never replaces dialogue.
func StripAdvertisements(segs []segments.Segment) ([]segments.Segment, int) {
	kept := make([]segments.Segment, 0, len(segs))
	removed := 0
	for _, seg := range segs {
		if segmentIsAdvertisement(seg.Text) {
			removed++
			continue
		}
		kept = append(kept, seg)
	}
	return kept, removed
}

func segmentIsAdvertisement(text string) bool {
	payload := strings.ToLower(strings.TrimSpace(text))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}
