package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

const (
	environmentFileOpenErrorTemplateConstant  = "failed to open environment file %s: %w"
	environmentFileParseErrorTemplateConstant = "failed to parse environment file %s: %w"
	environmentApplyErrorTemplateConstant     = "failed to set environment variable %s: %w"
)

// EnvironmentLoader applies dotenv files to the process environment without overriding existing variables.
type EnvironmentLoader struct {
	fileSystem afero.Fs
	lookup     func(string) (string, bool)
	assign     func(string, string) error
}

// NewEnvironmentLoader constructs an EnvironmentLoader backed by fileSystem and the process environment.
func NewEnvironmentLoader(fileSystem afero.Fs) *EnvironmentLoader {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &EnvironmentLoader{fileSystem: fileSystem, lookup: os.LookupEnv, assign: os.Setenv}
}

// Load reads environmentFilePath and exports every variable that is not already set.
// A missing file is not an error. The applied variable names are returned in sorted order.
func (loader *EnvironmentLoader) Load(environmentFilePath string) ([]string, error) {
	if len(environmentFilePath) == 0 {
		return nil, nil
	}

	environmentFile, openError := loader.fileSystem.Open(environmentFilePath)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(environmentFileOpenErrorTemplateConstant, environmentFilePath, openError)
	}
	defer environmentFile.Close()

	parsedVariables, parseError := godotenv.Parse(environmentFile)
	if parseError != nil {
		return nil, fmt.Errorf(environmentFileParseErrorTemplateConstant, environmentFilePath, parseError)
	}

	variableNames := make([]string, 0, len(parsedVariables))
	for variableName := range parsedVariables {
		variableNames = append(variableNames, variableName)
	}
	sort.Strings(variableNames)

	appliedNames := make([]string, 0, len(variableNames))
	for _, variableName := range variableNames {
		if _, alreadySet := loader.lookup(variableName); alreadySet {
			continue
		}
		if assignError := loader.assign(variableName, parsedVariables[variableName]); assignError != nil {
			return appliedNames, fmt.Errorf(environmentApplyErrorTemplateConstant, variableName, assignError)
		}
		appliedNames = append(appliedNames, variableName)
	}

	return appliedNames, nil
}
