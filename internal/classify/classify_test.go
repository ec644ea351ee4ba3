package classify

import (
	"testing"

	"subfuse/internal/config"
	"subfuse/internal/segments"
)

func testVocabulary() Vocabulary {
	return NewVocabulary(nil, nil)
}

func dialogueSegment(start, end float64, text string) segments.Segment {
	return segments.Segment{Start: start, End: end, Text: text}
}

func lyricFixture() []segments.Segment {
	// Five chorus lines with two distinct texts, even durations, and
	// heavy poetic vocabulary.
	return []segments.Segment{
		dialogueSegment(0.0, 2.0, "Dancing in the moonlight tonight"),
		dialogueSegment(2.1, 4.1, "Dancing in the moonlight tonight"),
		dialogueSegment(4.2, 6.2, "We keep dancing all night long"),
		dialogueSegment(6.3, 8.3, "Dancing in the moonlight tonight"),
		dialogueSegment(8.4, 10.4, "We keep dancing all night long"),
	}
}

func TestClassifyRepeatedShortFragments(t *testing.T) {
	segs := []segments.Segment{
		dialogueSegment(10.0, 10.2, "Okay."),
		dialogueSegment(10.3, 10.5, "Okay."),
		dialogueSegment(10.6, 10.8, "Okay."),
	}
	cfg := config.Default()

	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d: %+v", len(runs), runs)
	}
	run := runs[0]
	if run.Kind != KindHallucination {
		t.Errorf("run kind = %s, want hallucination", run.Kind)
	}
	if run.StartIndex != 0 || run.EndIndex != 2 {
		t.Errorf("run covers [%d,%d], want [0,2]", run.StartIndex, run.EndIndex)
	}
	if run.Confidence < 0.9 {
		t.Errorf("triple repeat confidence = %.2f, want >= 0.9", run.Confidence)
	}
}

func TestClassifyLyricWindow(t *testing.T) {
	segs := lyricFixture()
	cfg := config.Default()

	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d: %+v", len(runs), runs)
	}
	run := runs[0]
	if run.Kind != KindLyric {
		t.Errorf("run kind = %s, want lyric", run.Kind)
	}
	if run.StartIndex != 0 || run.EndIndex != 4 {
		t.Errorf("run covers [%d,%d], want [0,4]", run.StartIndex, run.EndIndex)
	}
	if run.Start != segs[0].Start || run.End != segs[4].End {
		t.Errorf("run spans [%.2f,%.2f], want [%.2f,%.2f]",
			run.Start, run.End, segs[0].Start, segs[4].End)
	}
	if run.Confidence < cfg.Lyrics.ScoreThreshold {
		t.Errorf("confidence %.2f below threshold %.2f", run.Confidence, cfg.Lyrics.ScoreThreshold)
	}
}

func TestClassifyLeavesDialogueAlone(t *testing.T) {
	segs := []segments.Segment{
		dialogueSegment(0.0, 2.5, "We should head back before the storm hits the valley."),
		dialogueSegment(3.0, 4.8, "The radio said it would pass south of here."),
		dialogueSegment(5.5, 8.2, "I would rather not bet the truck on a weather report."),
		dialogueSegment(9.0, 10.1, "Fair enough, pack it up."),
		dialogueSegment(11.0, 13.4, "Grab the coil of rope from the shed on your way."),
	}
	cfg := config.Default()

	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())
	if len(runs) != 0 {
		t.Fatalf("expected no runs for dialogue, got %+v", runs)
	}
}

func TestClassifyDisjointRuns(t *testing.T) {
	segs := append(lyricFixture(),
		dialogueSegment(14.0, 16.0, "That song has been stuck in my head all week."),
		dialogueSegment(20.0, 20.2, "Thanks."),
		dialogueSegment(20.3, 20.5, "Thanks."),
	)
	cfg := config.Default()

	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].StartIndex <= runs[i-1].EndIndex {
			t.Fatalf("runs overlap: %+v", runs)
		}
	}
	if runs[0].Kind != KindLyric || runs[1].Kind != KindHallucination {
		t.Errorf("run kinds = %s, %s; want lyric, hallucination", runs[0].Kind, runs[1].Kind)
	}
}

func TestCollapseDropsHallucinationWithoutAlternate(t *testing.T) {
	segs := []segments.Segment{
		dialogueSegment(10.0, 10.2, "Okay."),
		dialogueSegment(10.3, 10.5, "Okay."),
		dialogueSegment(10.6, 10.8, "Okay."),
	}
	cfg := config.Default()
	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())

	out, stats := Collapse(segs, runs, nil, cfg.Hallucination)
	if len(out) != 0 {
		t.Fatalf("expected all segments dropped, got %+v", out)
	}
	if stats.DroppedSegments != 3 {
		t.Errorf("DroppedSegments = %d, want 3", stats.DroppedSegments)
	}
	if stats.SkippedRuns != 1 {
		t.Errorf("SkippedRuns = %d, want 1", stats.SkippedRuns)
	}
}

func TestCollapseSubstitutesFromAlternate(t *testing.T) {
	segs := []segments.Segment{
		dialogueSegment(0.0, 1.5, "Before the run."),
		dialogueSegment(10.0, 10.2, "Okay."),
		dialogueSegment(10.3, 10.5, "Okay."),
		dialogueSegment(10.6, 10.8, "Okay."),
		dialogueSegment(12.0, 14.0, "After the run we kept walking."),
	}
	alternate := []segments.Segment{
		dialogueSegment(9.9, 10.25, "All right."),
		dialogueSegment(10.25, 10.55, "All right then."),
		dialogueSegment(10.55, 10.9, "Let's go."),
	}
	cfg := config.Default()
	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())
	if len(runs) != 1 || runs[0].Kind != KindHallucination {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	out, stats := Collapse(segs, runs, alternate, cfg.Hallucination)
	if len(out) != 5 {
		t.Fatalf("expected 5 segments, got %d: %+v", len(out), out)
	}
	if stats.Substituted != 3 || stats.DroppedSegments != 0 {
		t.Errorf("stats = %+v, want 3 substituted and 0 dropped", stats)
	}
	wantTexts := []string{"All right.", "All right then.", "Let's go."}
	for i, want := range wantTexts {
		got := out[i+1]
		if got.Text != want {
			t.Errorf("segment %d text = %q, want %q", i+1, got.Text, want)
		}
		if got.TextOriginal != "Okay." {
			t.Errorf("segment %d original text = %q, want %q", i+1, got.TextOriginal, "Okay.")
		}
	}
	if out[0].Text != "Before the run." || out[4].Text != "After the run we kept walking." {
		t.Errorf("surrounding segments altered: %+v", out)
	}
}

func TestCollapseLyricRun(t *testing.T) {
	segs := lyricFixture()
	cfg := config.Default()
	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())
	if len(runs) != 1 || runs[0].Kind != KindLyric {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	out, stats := Collapse(segs, runs, nil, cfg.Hallucination)
	if len(out) != 1 {
		t.Fatalf("expected a single collapsed segment, got %d: %+v", len(out), out)
	}
	collapsed := out[0]
	if collapsed.Start != segs[0].Start || collapsed.End != segs[4].End {
		t.Errorf("collapsed spans [%.2f,%.2f], want [%.2f,%.2f]",
			collapsed.Start, collapsed.End, segs[0].Start, segs[4].End)
	}
	if collapsed.Text != segs[0].Text {
		t.Errorf("collapsed text = %q, want first segment text %q", collapsed.Text, segs[0].Text)
	}
	if !collapsed.IsLyric {
		t.Error("collapsed segment not marked as lyric")
	}
	if collapsed.LyricConfidence != runs[0].Confidence {
		t.Errorf("lyric confidence = %.2f, want run confidence %.2f",
			collapsed.LyricConfidence, runs[0].Confidence)
	}
	if stats.LyricRuns != 1 {
		t.Errorf("LyricRuns = %d, want 1", stats.LyricRuns)
	}
}

func TestCollapseKeepsOrdering(t *testing.T) {
	segs := append(lyricFixture(),
		dialogueSegment(10.3, 12.0, "The band packed up after that."),
	)
	cfg := config.Default()
	runs := Classify(segs, cfg.Hallucination, cfg.Lyrics, testVocabulary())

	out, _ := Collapse(segs, runs, nil, cfg.Hallucination)
	for i := 1; i < len(out); i++ {
		if out[i].Start < out[i-1].End {
			t.Fatalf("segments overlap after collapse: %+v", out)
		}
	}
}

func TestMergeRunsUnionsAdjacent(t *testing.T) {
	runs := []Run{
		{Kind: KindHallucination, StartIndex: 0, EndIndex: 1, Start: 0, End: 1, Confidence: 0.8, Method: MethodRepeat},
		{Kind: KindHallucination, StartIndex: 2, EndIndex: 2, Start: 1.1, End: 1.3, Confidence: 0.6, Method: MethodFragment},
		{Kind: KindHallucination, StartIndex: 5, EndIndex: 6, Start: 4, End: 5, Confidence: 0.7, Method: MethodCluster},
	}
	merged := mergeRuns(runs)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged runs, got %d: %+v", len(merged), merged)
	}
	if merged[0].StartIndex != 0 || merged[0].EndIndex != 2 {
		t.Errorf("first run covers [%d,%d], want [0,2]", merged[0].StartIndex, merged[0].EndIndex)
	}
	if merged[0].Confidence != 0.8 {
		t.Errorf("merged confidence = %.2f, want 0.8", merged[0].Confidence)
	}
}

func TestVocabularyExtension(t *testing.T) {
	vocab := NewVocabulary([]string{"Saudade", ""}, []string{"TRA"})
	if hits := vocab.PoeticHits("saudade in my heart"); hits != 2 {
		t.Errorf("poetic hits = %d, want 2", hits)
	}
	if hits := vocab.InterjectionHits("tra la la"); hits != 3 {
		t.Errorf("interjection hits = %d, want 3", hits)
	}
}
