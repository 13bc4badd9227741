package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apolaki-ghub/Project3/internal/sentiment"
)

// FormatReport renders body followed by the sentiment section:
//
//	<body>
//
//	Document Score: <score>
//	Document Magnitude: <magnitude>
//	Sentiment - <LABEL>
func FormatReport(body string, a sentiment.Assessment) string {
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Document Score: %s\n", formatScore(a.Score))
	fmt.Fprintf(&b, "Document Magnitude: %s\n", formatScore(a.Magnitude))
	fmt.Fprintf(&b, "Sentiment - %s\n", a.Label())
	return b.String()
}

// Scores arrive as float32 from the service; print the shortest float32 form.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}
