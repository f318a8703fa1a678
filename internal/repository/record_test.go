package repository_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghdash/internal/repository"
)

const (
	testRepositoryPayloadConstant = `{"createdAt":"2023-01-02T03:04:05Z","description":"Example","diskUsage":42,"id":"R_1","name":"example","pushedAt":"2023-02-01T00:00:00Z","repositoryTopics":[{"name":"go"},{"name":"cli"}],"sshUrl":"git@github.com:owner/example.git","stargazerCount":7,"updatedAt":"2023-02-02T00:00:00Z","url":"https://github.com/owner/example"}`
)

func TestRecordDecodesGitHubCLIFields(testInstance *testing.T) {
	var record repository.Record
	require.NoError(testInstance, json.Unmarshal([]byte(testRepositoryPayloadConstant), &record))

	require.Equal(testInstance, "2023-01-02T03:04:05Z", record.CreatedAt)
	require.Equal(testInstance, uint64(42), record.DiskUsage)
	require.Equal(testInstance, "R_1", record.Identifier)
	require.Equal(testInstance, "git@github.com:owner/example.git", record.SSHURL)
	require.Equal(testInstance, uint64(7), record.StargazerCount)
	require.Equal(testInstance, []string{"go", "cli"}, record.TopicNames())
}

func TestRecordEncodesMissingTopicsAsNull(testInstance *testing.T) {
	encoded, encodingError := json.Marshal(repository.Record{Name: "example", URL: "https://github.com/owner/example"})
	require.NoError(testInstance, encodingError)
	require.Contains(testInstance, string(encoded), `"repositoryTopics":null`)
	require.Contains(testInstance, string(encoded), `"sshUrl":""`)
}

func TestListItemsPreserveOrder(testInstance *testing.T) {
	records := []repository.Record{
		{Name: "foo", URL: "https://x/foo", Description: "", StargazerCount: 3},
		{Name: "bar", URL: "https://x/bar", Description: "a short blurb"},
	}

	listItems := repository.ListItems(records)
	require.Equal(testInstance, []repository.ListItem{
		{Name: "foo", URL: "https://x/foo"},
		{Name: "bar", URL: "https://x/bar", Description: "a short blurb"},
	}, listItems)
	require.Empty(testInstance, repository.ListItems(nil))
}
