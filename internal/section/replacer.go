package section

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	temporaryFilePatternTemplateConstant = ".%s.*.tmp"
	unsupportedStrategyTemplateConstant  = "unsupported replace strategy: %s"
	sectionReplacedMessageConstant       = "Rewrote managed section"
	sectionReadMessageConstant           = "Read managed file"
	logFieldPathConstant                 = "path"
	logFieldSectionConstant              = "section"
	logFieldStrategyConstant             = "strategy"
	logFieldBytesConstant                = "bytes"
	defaultFilePermissionsConstant       = os.FileMode(0o644)
)

// Strategy selects how the rewritten file replaces the original.
type Strategy string

// Supported replace strategies.
const (
	// StrategyAtomic writes a sibling temporary file and renames it over the original.
	StrategyAtomic Strategy = Strategy("atomic")
	// StrategyRecreate deletes the original and creates it again with the new content.
	StrategyRecreate Strategy = Strategy("recreate")
)

// ParseStrategy converts a textual strategy into a Strategy.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case StrategyAtomic:
		return StrategyAtomic, nil
	case StrategyRecreate:
		return StrategyRecreate, nil
	default:
		return "", fmt.Errorf(unsupportedStrategyTemplateConstant, value)
	}
}

// Replacer rewrites a named section of a file in place.
type Replacer struct {
	fileSystem afero.Fs
	strategy   Strategy
	logger     *zap.Logger
}

// NewReplacer constructs a Replacer. A nil filesystem uses the operating system,
// an empty strategy means StrategyAtomic, and a nil logger discards output.
func NewReplacer(fileSystem afero.Fs, strategy Strategy, logger *zap.Logger) *Replacer {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if len(strategy) == 0 {
		strategy = StrategyAtomic
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replacer{fileSystem: fileSystem, strategy: strategy, logger: logger}
}

// Replace substitutes body for the content between the section markers of the file at filePath.
func (replacer *Replacer) Replace(body string, section CommentSection, filePath string) error {
	if validationError := section.Validate(); validationError != nil {
		return validationError
	}

	contentBytes, readError := afero.ReadFile(replacer.fileSystem, filePath)
	if readError != nil {
		return FileAccessError{Operation: FileOperationRead, Path: filePath, Cause: readError}
	}
	replacer.logger.Debug(
		sectionReadMessageConstant,
		zap.String(logFieldPathConstant, filePath),
		zap.Int(logFieldBytesConstant, len(contentBytes)),
	)

	updatedContent, spliceError := Splice(string(contentBytes), body, section)
	if spliceError != nil {
		return spliceError
	}

	var persistError error
	switch replacer.strategy {
	case StrategyRecreate:
		persistError = replacer.recreate(filePath, []byte(updatedContent))
	case StrategyAtomic:
		persistError = replacer.replaceAtomically(filePath, []byte(updatedContent))
	default:
		persistError = fmt.Errorf(unsupportedStrategyTemplateConstant, replacer.strategy)
	}
	if persistError != nil {
		return persistError
	}

	replacer.logger.Debug(
		sectionReplacedMessageConstant,
		zap.String(logFieldPathConstant, filePath),
		zap.String(logFieldSectionConstant, section.Name()),
		zap.String(logFieldStrategyConstant, string(replacer.strategy)),
		zap.Int(logFieldBytesConstant, len(updatedContent)),
	)
	return nil
}

// recreate leaves no file behind if the write after removal fails.
func (replacer *Replacer) recreate(filePath string, content []byte) error {
	permissions := replacer.resolvePermissions(filePath)
	if removeError := replacer.fileSystem.Remove(filePath); removeError != nil {
		return FileAccessError{Operation: FileOperationRemove, Path: filePath, Cause: removeError}
	}
	if writeError := afero.WriteFile(replacer.fileSystem, filePath, content, permissions); writeError != nil {
		return FileAccessError{Operation: FileOperationWrite, Path: filePath, Cause: writeError}
	}
	return nil
}

func (replacer *Replacer) replaceAtomically(filePath string, content []byte) error {
	permissions := replacer.resolvePermissions(filePath)
	temporaryFile, createError := afero.TempFile(
		replacer.fileSystem,
		filepath.Dir(filePath),
		fmt.Sprintf(temporaryFilePatternTemplateConstant, filepath.Base(filePath)),
	)
	if createError != nil {
		return FileAccessError{Operation: FileOperationWrite, Path: filePath, Cause: createError}
	}
	temporaryPath := temporaryFile.Name()

	_, writeError := temporaryFile.Write(content)
	closeError := temporaryFile.Close()
	if writeError == nil {
		writeError = closeError
	}
	if writeError == nil {
		writeError = replacer.fileSystem.Chmod(temporaryPath, permissions)
	}
	if writeError != nil {
		_ = replacer.fileSystem.Remove(temporaryPath)
		return FileAccessError{Operation: FileOperationWrite, Path: temporaryPath, Cause: writeError}
	}

	if renameError := replacer.fileSystem.Rename(temporaryPath, filePath); renameError != nil {
		_ = replacer.fileSystem.Remove(temporaryPath)
		return FileAccessError{Operation: FileOperationRename, Path: filePath, Cause: renameError}
	}
	return nil
}

func (replacer *Replacer) resolvePermissions(filePath string) os.FileMode {
	fileInfo, statError := replacer.fileSystem.Stat(filePath)
	if statError != nil {
		return defaultFilePermissionsConstant
	}
	return fileInfo.Mode().Perm()
}
