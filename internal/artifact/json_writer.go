package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/ghdash/internal/repository"
)

const (
	jsonIndentPrefixConstant           = ""
	jsonIndentValueConstant            = "  "
	serializationErrorTemplateConstant = "unable to serialize repositories: %s"
	fileAccessErrorTemplateConstant    = "unable to write %s: %s"
	artifactWrittenMessageConstant     = "Wrote repository artifact"
	logFieldPathConstant               = "path"
	logFieldRecordCountConstant        = "records"
	logFieldBytesConstant              = "bytes"
	artifactFileFlagsConstant          = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	artifactFilePermissionsConstant    = os.FileMode(0o644)
)

// SerializationError reports a failure to encode the records as JSON.
type SerializationError struct {
	Cause error
}

// Error describes the encoding failure.
func (serializationError SerializationError) Error() string {
	return fmt.Sprintf(serializationErrorTemplateConstant, serializationError.Cause)
}

// Unwrap exposes the underlying encoder error.
func (serializationError SerializationError) Unwrap() error {
	return serializationError.Cause
}

// FileAccessError reports a failure to open or write the artifact file.
type FileAccessError struct {
	Path  string
	Cause error
}

// Error describes the filesystem failure.
func (accessError FileAccessError) Error() string {
	return fmt.Sprintf(fileAccessErrorTemplateConstant, accessError.Path, accessError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (accessError FileAccessError) Unwrap() error {
	return accessError.Cause
}

// JSONWriter writes repository records to a JSON file, replacing previous content.
type JSONWriter struct {
	fileSystem afero.Fs
	logger     *zap.Logger
}

// NewJSONWriter constructs a JSONWriter. A nil filesystem uses the operating system.
func NewJSONWriter(fileSystem afero.Fs, logger *zap.Logger) *JSONWriter {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONWriter{fileSystem: fileSystem, logger: logger}
}

// Write serializes records and stores them at filePath.
func (writer *JSONWriter) Write(filePath string, records []repository.Record) error {
	if records == nil {
		records = []repository.Record{}
	}

	encodedRecords, encodingError := json.MarshalIndent(records, jsonIndentPrefixConstant, jsonIndentValueConstant)
	if encodingError != nil {
		return SerializationError{Cause: encodingError}
	}

	artifactFile, openError := writer.fileSystem.OpenFile(filePath, artifactFileFlagsConstant, artifactFilePermissionsConstant)
	if openError != nil {
		return FileAccessError{Path: filePath, Cause: openError}
	}

	_, writeError := artifactFile.Write(encodedRecords)
	closeError := artifactFile.Close()
	if writeError == nil {
		writeError = closeError
	}
	if writeError != nil {
		return FileAccessError{Path: filePath, Cause: writeError}
	}

	writer.logger.Debug(
		artifactWrittenMessageConstant,
		zap.String(logFieldPathConstant, filePath),
		zap.Int(logFieldRecordCountConstant, len(records)),
		zap.Int(logFieldBytesConstant, len(encodedRecords)),
	)
	return nil
}
