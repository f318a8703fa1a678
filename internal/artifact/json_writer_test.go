package artifact_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/ghdash/internal/artifact"
	"github.com/temirov/ghdash/internal/repository"
)

const (
	testArtifactPathConstant = "/workspace/gh_repo_list.json"
)

func TestJSONWriterWritesPrettyArray(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writer := artifact.NewJSONWriter(fileSystem, zap.NewNop())

	records := []repository.Record{
		{Name: "foo", URL: "https://x/foo"},
		{Name: "bar", URL: "https://x/bar", Description: "a short blurb", RepositoryTopics: []repository.Topic{{Name: "go"}}},
	}
	require.NoError(testInstance, writer.Write(testArtifactPathConstant, records))

	content, readError := afero.ReadFile(fileSystem, testArtifactPathConstant)
	require.NoError(testInstance, readError)
	require.True(testInstance, strings.HasPrefix(string(content), "[\n  {\n    \"createdAt\": \"\","))
	require.Contains(testInstance, string(content), "\"repositoryTopics\": null")

	var decoded []repository.Record
	require.NoError(testInstance, json.Unmarshal(content, &decoded))
	require.Equal(testInstance, records, decoded)

	var genericItems []map[string]any
	require.NoError(testInstance, json.Unmarshal(content, &genericItems))
	require.Len(testInstance, genericItems, 2)
	for _, fieldName := range []string{"createdAt", "description", "diskUsage", "id", "name", "pushedAt", "repositoryTopics", "sshUrl", "stargazerCount", "updatedAt", "url"} {
		require.Contains(testInstance, genericItems[0], fieldName)
	}
}

func TestJSONWriterTruncatesPreviousContent(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, testArtifactPathConstant, []byte(strings.Repeat("x", 4096)), 0o644))

	writer := artifact.NewJSONWriter(fileSystem, nil)
	require.NoError(testInstance, writer.Write(testArtifactPathConstant, nil))

	content, readError := afero.ReadFile(fileSystem, testArtifactPathConstant)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "[]", string(content))
}

func TestJSONWriterReportsUnwritablePath(testInstance *testing.T) {
	directoryPath := testInstance.TempDir()
	writer := artifact.NewJSONWriter(nil, zap.NewNop())

	writeError := writer.Write(directoryPath, []repository.Record{{Name: "foo", URL: "https://x/foo"}})
	require.Error(testInstance, writeError)

	var accessError artifact.FileAccessError
	require.True(testInstance, errors.As(writeError, &accessError))
	require.Equal(testInstance, directoryPath, accessError.Path)

	_, statError := os.Stat(filepath.Join(directoryPath, "gh_repo_list.json"))
	require.True(testInstance, os.IsNotExist(statError))
}
