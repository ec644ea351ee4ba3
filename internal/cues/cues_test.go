package cues

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"subfuse/internal/config"
	"subfuse/internal/segments"
)

func subtitleDefaults() config.Subtitles {
	return config.Default().Subtitles
}

func seg(start, end float64, speaker, text string) segments.Segment {
	return segments.Segment{Start: start, End: end, Speaker: speaker, Text: text}
}

func TestBuildMergesAdjacentSameSpeaker(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 1.5, "spk_0", "The storm rolled in before sunset"),
		seg(1.5, 3.0, "spk_0", "and we turned back toward the barn"),
	}
	cfg := subtitleDefaults()

	out, stats := Build(segs, cfg)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged cue, got %d: %+v", len(out), out)
	}
	if stats.MergedSegments != 1 {
		t.Errorf("MergedSegments = %d, want 1", stats.MergedSegments)
	}
	cue := out[0]
	if cue.Index != 1 {
		t.Errorf("index = %d, want 1", cue.Index)
	}
	if cue.Start != 0 {
		t.Errorf("start = %.2f, want 0", cue.Start)
	}
	if cue.End < 3.0 {
		t.Errorf("end = %.2f, want >= 3.0", cue.End)
	}
	if got := strings.Join(strings.Fields(cue.Text()), " "); got != "The storm rolled in before sunset and we turned back toward the barn" {
		t.Errorf("merged text = %q", got)
	}
}

func TestBuildSplitsOnSpeakerChange(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 1.5, "spk_0", "Did you lock the gate?"),
		seg(1.6, 3.0, "spk_1", "I thought you did."),
	}
	out, _ := Build(segs, subtitleDefaults())
	if len(out) != 2 {
		t.Fatalf("expected 2 cues across speakers, got %d", len(out))
	}
	if out[0].Speaker != "spk_0" || out[1].Speaker != "spk_1" {
		t.Errorf("speakers = %q, %q", out[0].Speaker, out[1].Speaker)
	}
}

func TestBuildSplitsOnLargeGap(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 1.5, "spk_0", "Hold on."),
		seg(3.0, 4.5, "spk_0", "Never mind."),
	}
	out, _ := Build(segs, subtitleDefaults())
	if len(out) != 2 {
		t.Fatalf("expected gap to split cues, got %d", len(out))
	}
}

func TestBuildExtendsFastCueTowardTarget(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 40))
	segs := []segments.Segment{seg(0.0, 2.0, "spk_0", text)}
	cfg := subtitleDefaults()

	out, stats := Build(segs, cfg)
	if len(out) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(out))
	}
	if math.Abs(out[0].End-cfg.MaxCueDuration) > 1e-9 {
		t.Errorf("end = %.3f, want clamped to max duration %.3f", out[0].End, cfg.MaxCueDuration)
	}
	if stats.ExtendedForCPS != 1 {
		t.Errorf("ExtendedForCPS = %d, want 1", stats.ExtendedForCPS)
	}
}

func TestBuildExtensionNeverCrossesNextCue(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 15))
	segs := []segments.Segment{
		seg(0.0, 1.0, "spk_0", text),
		seg(2.5, 4.0, "spk_1", "And then what happened?"),
	}
	out, _ := Build(segs, subtitleDefaults())
	if len(out) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(out))
	}
	if out[0].End > out[1].Start {
		t.Errorf("extended cue crosses next: end %.3f > start %.3f", out[0].End, out[1].Start)
	}
}

func TestBuildExtendsShortCueToMinimumDuration(t *testing.T) {
	segs := []segments.Segment{seg(0.0, 0.4, "spk_0", "Wait.")}
	cfg := subtitleDefaults()

	out, stats := Build(segs, cfg)
	if len(out) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(out))
	}
	if out[0].Duration() < cfg.MinCueDuration {
		t.Errorf("duration = %.3f, want >= %.3f", out[0].Duration(), cfg.MinCueDuration)
	}
	if stats.ExtendedForDuration != 1 {
		t.Errorf("ExtendedForDuration = %d, want 1", stats.ExtendedForDuration)
	}
}

func TestBuildOutputOrderedAndNonOverlapping(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 0.8, "spk_0", "One moment."),
		seg(1.0, 2.0, "spk_1", "Take your time."),
		seg(2.1, 2.4, "spk_0", "Done."),
		seg(3.0, 5.0, "spk_0", "Let's see what we have here then."),
	}
	cfg := subtitleDefaults()
	out, _ := Build(segs, cfg)
	for i := 1; i < len(out); i++ {
		if out[i].Start < out[i-1].End {
			t.Fatalf("cues overlap: %+v", out)
		}
		if out[i].Index != out[i-1].Index+1 {
			t.Fatalf("cue indices not sequential: %+v", out)
		}
	}
	for _, cue := range out {
		if cps := cue.CPS(); cps <= 0 || cps > cfg.HardCapCPS {
			t.Errorf("cue %d reading rate %.2f cps outside (0, %.0f]", cue.Index, cps, cfg.HardCapCPS)
		}
	}
}

func TestBuildLayoutBounds(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 4.0, "spk_0", "This sentence is long enough that it cannot fit on a single line."),
		seg(5.0, 6.0, "spk_1", "Short."),
		seg(7.0, 12.0, "spk_0", strings.TrimSpace(strings.Repeat("overflow ", 30))),
	}
	cfg := subtitleDefaults()

	out, _ := Build(segs, cfg)
	for _, cue := range out {
		if len(cue.Lines) > cfg.MaxLines {
			t.Errorf("cue %d has %d lines, max %d", cue.Index, len(cue.Lines), cfg.MaxLines)
		}
		for _, line := range cue.Lines {
			if utf8.RuneCountInString(line) > cfg.MaxLineChars {
				t.Errorf("cue %d line %q exceeds %d chars", cue.Index, line, cfg.MaxLineChars)
			}
		}
	}
}

func TestLayoutLinesBalancedBreak(t *testing.T) {
	cfg := subtitleDefaults()
	lines, truncated := layoutLines("This sentence is long enough that it cannot fit on a single line.", cfg)
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	first := utf8.RuneCountInString(lines[0])
	second := utf8.RuneCountInString(lines[1])
	if first > cfg.MaxLineChars || second > cfg.MaxLineChars {
		t.Errorf("line over limit: %d, %d", first, second)
	}
	if diff := first - second; diff > 20 || diff < -20 {
		t.Errorf("lines badly unbalanced: %d vs %d chars", first, second)
	}
}

func TestLayoutLinesTruncatesOverflow(t *testing.T) {
	cfg := subtitleDefaults()
	lines, truncated := layoutLines(strings.TrimSpace(strings.Repeat("overflow ", 30)), cfg)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if len(lines) != cfg.MaxLines {
		t.Fatalf("expected %d lines, got %d", cfg.MaxLines, len(lines))
	}
	for _, line := range lines {
		if utf8.RuneCountInString(line) > cfg.MaxLineChars {
			t.Errorf("line %q exceeds limit", line)
		}
	}
}

func TestLayoutLinesOversizedWordKeptWhole(t *testing.T) {
	cfg := subtitleDefaults()
	word := strings.Repeat("x", cfg.MaxLineChars+10)
	lines, truncated := layoutLines(word, cfg)
	if truncated {
		t.Fatal("single word should not count as truncation")
	}
	if len(lines) != 1 || lines[0] != word {
		t.Fatalf("oversized word mangled: %q", lines)
	}
}

func TestSRTRoundTrip(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 2.0, "spk_0", "First line of dialogue here."),
		seg(2.5, 5.5, "spk_1", "This sentence is long enough that it cannot fit on a single line."),
		seg(6.0, 7.2, "spk_0", "Short reply."),
	}
	original, _ := Build(segs, subtitleDefaults())

	parsed, err := ParseSRT([]byte(FormatSRT(original)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed) != len(original) {
		t.Fatalf("cue count changed: %d -> %d", len(original), len(parsed))
	}
	for i := range original {
		if math.Abs(parsed[i].Start-original[i].Start) > 0.001 {
			t.Errorf("cue %d start %.4f -> %.4f", i+1, original[i].Start, parsed[i].Start)
		}
		if math.Abs(parsed[i].End-original[i].End) > 0.001 {
			t.Errorf("cue %d end %.4f -> %.4f", i+1, original[i].End, parsed[i].End)
		}
		if parsed[i].Text() != original[i].Text() {
			t.Errorf("cue %d text %q -> %q", i+1, original[i].Text(), parsed[i].Text())
		}
	}
}

func TestParseSRTRejectsMalformedBlock(t *testing.T) {
	cases := []string{
		"not a number\n00:00:01,000 --> 00:00:02,000\nText\n",
		"1\nno timing line\nText\n",
		"1\n00:00:01,000 --> bogus\nText\n",
	}
	for _, input := range cases {
		if _, err := ParseSRT([]byte(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestParseSRTEmpty(t *testing.T) {
	list, err := ParseSRT([]byte("  \n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no cues, got %d", len(list))
	}
}

func TestTimestampFormat(t *testing.T) {
	seconds, err := parseTimestamp("01:02:03,456")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if math.Abs(seconds-3723.456) > 1e-9 {
		t.Errorf("parsed %.4f, want 3723.456", seconds)
	}
	if got := formatTimestamp(seconds); got != "01:02:03,456" {
		t.Errorf("formatted %q, want 01:02:03,456", got)
	}
}

func TestStripAdvertisements(t *testing.T) {
	segs := []segments.Segment{
		seg(0.0, 2.0, "", "Subtitles by CaptionCrew"),
		seg(2.5, 4.0, "", "The ferry leaves at noon."),
		seg(4.5, 6.0, "", "Visit www.example.com for more"),
		seg(6.5, 8.0, "", "Then we walk."),
	}
	kept, removed := StripAdvertisements(segs)
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if len(kept) != 2 {
		t.Fatalf("kept = %d, want 2", len(kept))
	}
	if kept[0].Text != "The ferry leaves at noon." || kept[1].Text != "Then we walk." {
		t.Errorf("wrong segments kept: %+v", kept)
	}
}
