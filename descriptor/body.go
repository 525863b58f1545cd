package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// FriendlyNameElement is the descriptor element holding the display name.
const FriendlyNameElement = "friendlyName"

var (
	// ErrMalformedDescriptor is returned when the descriptor body is not a
	// well-formed XML document.
	ErrMalformedDescriptor = errors.New("malformed device descriptor")

	errNoRootElement = errors.New("document has no root element")
)

// FriendlyName extracts the device's friendly name from a descriptor body.
func FriendlyName(r io.Reader) (string, error) {
	return ElementText(r, FriendlyNameElement)
}

// ElementText parses r as an XML document and returns the text content of
// the first element, in document order, whose local name is tag. The
// namespace is ignored, so a prefixed <x:friendlyName> matches as well.
// Nested character data is included. A well-formed document without such an
// element yields an empty string.
//
// The whole document is parsed even after a match. Syntax problems are
// reported as ErrMalformedDescriptor, failures of r itself are returned as
// they are.
func ElementText(r io.Reader, tag string) (string, error) {
	src := &recordingReader{r: r}
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		text      strings.Builder
		found     bool
		capturing int
		level     int
		sawRoot   bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if src.err != nil {
				return "", src.err
			}
			return "", fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if level == 0 && sawRoot {
				return "", fmt.Errorf("%w: more than one root element", ErrMalformedDescriptor)
			}
			sawRoot = true
			level++

			if capturing > 0 {
				capturing++
			} else if !found && t.Name.Local == tag {
				found = true
				capturing = 1
			}
		case xml.EndElement:
			level--
			if capturing > 0 {
				capturing--
			}
		case xml.CharData:
			if level == 0 {
				if len(strings.TrimSpace(string(t))) != 0 {
					return "", fmt.Errorf("%w: content outside of the root element", ErrMalformedDescriptor)
				}
				continue
			}
			if capturing > 0 {
				text.Write(t)
			}
		}
	}

	if !sawRoot {
		return "", fmt.Errorf("%w: %w", ErrMalformedDescriptor, errNoRootElement)
	}

	return text.String(), nil
}

// recordingReader remembers the first non-EOF error of the wrapped reader so
// that I/O failures can be told apart from syntax errors.
type recordingReader struct {
	r   io.Reader
	err error
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF && rr.err == nil {
		rr.err = err
	}
	return n, err
}
