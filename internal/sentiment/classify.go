package sentiment

// Label is the three-way bucket a document sentiment falls into.
type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

const (
	positiveThreshold = 0.75
	negativeThreshold = -0.75
)

// Assessment is the document-level score/magnitude pair returned by the
// sentiment service. Score lies in [-1, 1], Magnitude is non-negative.
type Assessment struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// Combined weights the score by how emotionally loaded the text is.
func (a Assessment) Combined() float64 {
	return a.Score * a.Magnitude
}

func (a Assessment) Label() Label {
	return Classify(a.Score, a.Magnitude)
}

// Classify buckets score×magnitude. Values exactly on a threshold are NEUTRAL.
func Classify(score, magnitude float64) Label {
	combined := score * magnitude
	switch {
	case combined > positiveThreshold:
		return Positive
	case combined < negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
