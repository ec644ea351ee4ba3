package classify

// Kind discriminates the classification a run carries. Keeping this a
// closed sum (rather than independent boolean flags) keeps the collapse
// switch exhaustive when new run types are added.
type Kind int

const (
	KindHallucination Kind = iota
	KindLyric
)

func (k Kind) String() string {
	switch k {
	case KindHallucination:
		return "hallucination"
	case KindLyric:
		return "lyric"
	default:
		return "unknown"
	}
}

// Detection methods recorded on runs for the output summary.
const (
	MethodRepeat   = "repeat"
	MethodCluster  = "cluster"
	MethodFragment = "fragment"
	MethodWindow   = "window"
)

// Run is a maximal contiguous subsequence of segments sharing one
// classification. Runs are ephemeral: recomputed per pass, never persisted.
// StartIndex and EndIndex are inclusive positions in the scanned stream.
type Run struct {
	Kind       Kind
	StartIndex int
	EndIndex   int
	Start      float64
	End        float64
	Confidence float64
	Method     string
}

// Len returns the number of segments the run covers.
func (r Run) Len() int {
	return r.EndIndex - r.StartIndex + 1
}

// overlaps reports whether two runs share at least one segment index.
func (r Run) overlaps(other Run) bool {
	return r.StartIndex <= other.EndIndex && other.StartIndex <= r.EndIndex
}
