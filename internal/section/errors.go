package section

import (
	"errors"
	"fmt"
)

const (
	sectionNameRequiredMessageConstant      = "section name must be provided"
	markerOrderMessageConstant              = "start marker must precede end marker"
	invalidSectionNameTemplateConstant      = "section name %q must not contain marker syntax or line breaks"
	markerNotFoundTemplateConstant          = "%s marker %s not found"
	fileAccessErrorTemplateConstant         = "unable to %s %s: %s"
	unknownFileAccessFailureMessageConstant = "unknown error"
)

// ErrSectionNameRequired indicates an empty section name.
var ErrSectionNameRequired = errors.New(sectionNameRequiredMessageConstant)

// ErrMarkerOrder indicates the end marker appears before the start marker.
var ErrMarkerOrder = errors.New(markerOrderMessageConstant)

// InvalidSectionNameError reports a section name that cannot form a marker.
type InvalidSectionNameError struct {
	SectionName string
}

// Error describes the invalid name.
func (nameError InvalidSectionNameError) Error() string {
	return fmt.Sprintf(invalidSectionNameTemplateConstant, nameError.SectionName)
}

// MarkerNotFoundError reports a missing section marker.
type MarkerNotFoundError struct {
	Role   MarkerRole
	Marker string
}

// Error describes the missing marker.
func (markerError MarkerNotFoundError) Error() string {
	return fmt.Sprintf(markerNotFoundTemplateConstant, markerError.Role, markerError.Marker)
}

// FileOperation names the filesystem step that failed.
type FileOperation string

// File operations performed by the replacer.
const (
	FileOperationRead   FileOperation = FileOperation("read")
	FileOperationRemove FileOperation = FileOperation("remove")
	FileOperationWrite  FileOperation = FileOperation("write")
	FileOperationRename FileOperation = FileOperation("rename")
)

// FileAccessError wraps filesystem failures encountered while rewriting a section.
type FileAccessError struct {
	Operation FileOperation
	Path      string
	Cause     error
}

// Error describes the filesystem failure.
func (accessError FileAccessError) Error() string {
	causeMessage := unknownFileAccessFailureMessageConstant
	if accessError.Cause != nil {
		causeMessage = accessError.Cause.Error()
	}
	return fmt.Sprintf(fileAccessErrorTemplateConstant, accessError.Operation, accessError.Path, causeMessage)
}

// Unwrap exposes the underlying filesystem error.
func (accessError FileAccessError) Unwrap() error {
	return accessError.Cause
}
