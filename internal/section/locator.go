package section

import "strings"

const (
	lineFeedConstant       = "\n"
	carriageReturnConstant = "\r"
)

// Location holds the zero-based line indexes of a section's marker lines.
type Location struct {
	StartLine int
	EndLine   int
}

// Locate finds the first start and end markers of the section in buffer and
// returns the indexes of the lines containing them.
func Locate(buffer string, section CommentSection) (Location, error) {
	startMarker := section.StartMarker()
	startOffset := strings.Index(buffer, startMarker)
	if startOffset < 0 {
		return Location{}, MarkerNotFoundError{Role: MarkerRoleStart, Marker: startMarker}
	}

	endMarker := section.EndMarker()
	endOffset := strings.Index(buffer, endMarker)
	if endOffset < 0 {
		return Location{}, MarkerNotFoundError{Role: MarkerRoleEnd, Marker: endMarker}
	}

	if startOffset >= endOffset {
		return Location{}, ErrMarkerOrder
	}

	startLine := strings.Count(buffer[:startOffset], lineFeedConstant)
	endLine := strings.Count(buffer[:endOffset], lineFeedConstant)
	if startLine >= endLine {
		return Location{}, ErrMarkerOrder
	}

	return Location{StartLine: startLine, EndLine: endLine}, nil
}

// Splice returns buffer with every line strictly between the section markers
// replaced by the lines of body. Marker lines are retained and the result is
// terminated by a single newline.
func Splice(buffer string, body string, section CommentSection) (string, error) {
	location, locateError := Locate(buffer, section)
	if locateError != nil {
		return "", locateError
	}

	bufferLines := splitLines(buffer)
	bodyLines := splitLines(body)

	splicedLines := make([]string, 0, len(bufferLines)+len(bodyLines))
	splicedLines = append(splicedLines, bufferLines[:location.StartLine+1]...)
	splicedLines = append(splicedLines, bodyLines...)
	splicedLines = append(splicedLines, bufferLines[location.EndLine:]...)

	return strings.Join(splicedLines, lineFeedConstant) + lineFeedConstant, nil
}

// splitLines breaks text on newlines, treating a final newline as a terminator
// and dropping a carriage return preceding each newline.
func splitLines(text string) []string {
	if len(text) == 0 {
		return nil
	}
	trimmedText := strings.TrimSuffix(text, lineFeedConstant)
	lines := strings.Split(trimmedText, lineFeedConstant)
	for lineIndex, line := range lines {
		lines[lineIndex] = strings.TrimSuffix(line, carriageReturnConstant)
	}
	return lines
}
