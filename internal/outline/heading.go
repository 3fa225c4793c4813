package outline

import "strings"

const (
	// Marker is the character whose leading run length encodes section depth.
	Marker = '*'
	// commentDelim starts an inline comment; label text stops there.
	commentDelim = ';'
)

// heading is the transient record produced per heading line.
type heading struct {
	label string
	level int
}

// extractHeading decides whether text is a heading line. The leading run of
// Marker characters is counted into the level; the rest of the line up to
// the first comment delimiter becomes the label, trimmed of surrounding
// whitespace. A marker run with an empty trimmed label is not a heading.
//
// Callers only invoke this on lines that start with Marker, so level >= 1
// whenever ok is true.
func extractHeading(text string) (heading, bool) {
	i := 0
	for i < len(text) && text[i] == Marker {
		i++
	}
	level := i

	var label strings.Builder
	for ; i < len(text); i++ {
		if text[i] == commentDelim {
			break
		}
		label.WriteByte(text[i])
	}

	h := heading{label: strings.TrimSpace(label.String()), level: level}
	if h.label == "" {
		return heading{}, false
	}
	return h, true
}
