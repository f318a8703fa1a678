package section

import (
	"fmt"
	"strings"
)

const (
	markerTemplateConstant         = "<!--%s_SECTION:%s-->"
	markerOpeningSyntaxConstant    = "<!--"
	markerClosingSyntaxConstant    = "-->"
	startMarkerRoleLabelConstant   = "START"
	endMarkerRoleLabelConstant     = "END"
	unknownMarkerRoleLabelConstant = "UNKNOWN"
)

// MarkerRole identifies which side of a section a marker delimits.
type MarkerRole int

// Marker roles.
const (
	MarkerRoleStart MarkerRole = iota
	MarkerRoleEnd
)

// String returns the label embedded in the marker comment.
func (role MarkerRole) String() string {
	switch role {
	case MarkerRoleStart:
		return startMarkerRoleLabelConstant
	case MarkerRoleEnd:
		return endMarkerRoleLabelConstant
	default:
		return unknownMarkerRoleLabelConstant
	}
}

// CommentSection names a region of a text file delimited by start and end markers.
type CommentSection struct {
	name string
}

// NewCommentSection constructs a section with surrounding whitespace trimmed from the name.
func NewCommentSection(sectionName string) CommentSection {
	return CommentSection{name: strings.TrimSpace(sectionName)}
}

// Name returns the trimmed section name.
func (section CommentSection) Name() string {
	return section.name
}

// Marker renders the marker comment for the requested role.
func (section CommentSection) Marker(role MarkerRole) string {
	return fmt.Sprintf(markerTemplateConstant, role, section.name)
}

// StartMarker renders the opening marker comment.
func (section CommentSection) StartMarker() string {
	return section.Marker(MarkerRoleStart)
}

// EndMarker renders the closing marker comment.
func (section CommentSection) EndMarker() string {
	return section.Marker(MarkerRoleEnd)
}

// Validate reports whether the section name can be embedded in a marker comment.
func (section CommentSection) Validate() error {
	if len(section.name) == 0 {
		return ErrSectionNameRequired
	}
	if strings.Contains(section.name, markerOpeningSyntaxConstant) || strings.Contains(section.name, markerClosingSyntaxConstant) {
		return InvalidSectionNameError{SectionName: section.name}
	}
	if strings.ContainsAny(section.name, "\r\n") {
		return InvalidSectionNameError{SectionName: section.name}
	}
	return nil
}
