package dashboard_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/ghdash/internal/dashboard"
	"github.com/temirov/ghdash/internal/githubcli"
	"github.com/temirov/ghdash/internal/section"
	pathutils "github.com/temirov/ghdash/internal/utils/path"
)

const (
	testHomeDirectoryConstant            = "/home/octocat"
	testHomeMarkdownPathConstant         = "/home/octocat/README.md"
	testHomeJSONPathConstant             = "/home/octocat/gh_repo_list.json"
	testProjectsMarkdownConstant         = "intro\n<!--START_SECTION:projects-->\n<!--END_SECTION:projects-->\n"
	testProjectsExpectedMarkdownConstant = "intro\n<!--START_SECTION:projects-->\n* [foo](https://x/foo)\n* [bar](https://x/bar) — a short blurb\n<!--END_SECTION:projects-->\n"
)

func newTestCommandBuilder(fileSystem afero.Fs, lister dashboard.RepositoryLister, configuration dashboard.CommandConfiguration) *dashboard.CommandBuilder {
	return &dashboard.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() dashboard.CommandConfiguration { return configuration },
		RepositoryLister:      lister,
		FileSystem:            fileSystem,
		HomeExpander: pathutils.NewHomeExpanderWithProvider(func() (string, error) {
			return testHomeDirectoryConstant, nil
		}),
	}
}

func executeCommand(testInstance *testing.T, builder *dashboard.CommandBuilder, arguments ...string) (string, error) {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)

	executionError := command.ExecuteContext(context.Background())
	return outputBuffer.String(), executionError
}

func TestCommandRunsWithConfiguration(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, testHomeMarkdownPathConstant, []byte(testProjectsMarkdownConstant), 0o644))

	configuration := dashboard.DefaultCommandConfiguration()
	configuration.MarkdownPath = "~/README.md"
	configuration.JSONPath = " ~/gh_repo_list.json "
	configuration.SectionTag = "projects"
	configuration.Owner = testOwnerConstant

	lister := &stubRepositoryLister{records: sampleRecords()}
	output, executionError := executeCommand(testInstance, newTestCommandBuilder(fileSystem, lister, configuration))
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, output)

	require.Equal(testInstance, []githubcli.RepositoryListOptions{{Owner: testOwnerConstant, SourceOnly: true, ResultLimit: githubcli.DefaultRepositoryLimit}}, lister.receivedOptions)

	markdownContent, readError := afero.ReadFile(fileSystem, testHomeMarkdownPathConstant)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testProjectsExpectedMarkdownConstant, string(markdownContent))

	exists, existsError := afero.Exists(fileSystem, testHomeJSONPathConstant)
	require.NoError(testInstance, existsError)
	require.True(testInstance, exists)
}

func TestCommandFlagsOverrideConfiguration(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, "/flags/PROFILE.md", []byte(testProjectsMarkdownConstant), 0o644))

	lister := &stubRepositoryLister{records: sampleRecords()}
	_, executionError := executeCommand(testInstance,
		newTestCommandBuilder(fileSystem, lister, dashboard.DefaultCommandConfiguration()),
		"--markdown", "/flags/PROFILE.md",
		"--json", "/flags/repos.json",
		"--section", "projects",
		"--owner", "hubot",
		"--limit", "25",
		"--source-only=false",
		"--replace-strategy", "RECREATE",
	)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []githubcli.RepositoryListOptions{{Owner: "hubot", SourceOnly: false, ResultLimit: 25}}, lister.receivedOptions)

	markdownContent, readError := afero.ReadFile(fileSystem, "/flags/PROFILE.md")
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testProjectsExpectedMarkdownConstant, string(markdownContent))

	exists, existsError := afero.Exists(fileSystem, "/flags/repos.json")
	require.NoError(testInstance, existsError)
	require.True(testInstance, exists)
}

func TestCommandDryRunPrintsBody(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	lister := &stubRepositoryLister{records: sampleRecords()}

	output, executionError := executeCommand(testInstance, newTestCommandBuilder(fileSystem, lister, dashboard.DefaultCommandConfiguration()), "--dry-run")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, testExpectedBodyConstant+"\n", output)

	entries, readDirError := afero.ReadDir(fileSystem, "/")
	require.NoError(testInstance, readDirError)
	require.Empty(testInstance, entries)
}

func TestCommandRejectsInvalidInput(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError string
	}{
		{name: "positional_arguments", arguments: []string{"extra"}, expectedError: "update does not accept positional arguments"},
		{name: "empty_section", arguments: []string{"--section", " "}, expectedError: "invalid dashboard configuration section_tag: section name must be provided"},
		{name: "marker_syntax_section", arguments: []string{"--section", "a-->b"}, expectedError: "invalid dashboard configuration section_tag"},
		{name: "non_positive_limit", arguments: []string{"--limit", "0"}, expectedError: "invalid dashboard configuration repository_limit: value must be positive"},
		{name: "unsupported_strategy", arguments: []string{"--replace-strategy", "copy"}, expectedError: "unsupported value \"copy\""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			lister := &stubRepositoryLister{records: sampleRecords()}
			_, executionError := executeCommand(testInstance, newTestCommandBuilder(afero.NewMemMapFs(), lister, dashboard.DefaultCommandConfiguration()), testCase.arguments...)
			require.Error(testInstance, executionError)
			require.Contains(testInstance, executionError.Error(), testCase.expectedError)
			require.Empty(testInstance, lister.receivedOptions)
		})
	}
}

func TestCommandSurfacesMissingMarkers(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, "README.md", []byte("no markers here\n"), 0o644))

	_, executionError := executeCommand(testInstance, newTestCommandBuilder(fileSystem, &stubRepositoryLister{records: sampleRecords()}, dashboard.DefaultCommandConfiguration()))
	require.Error(testInstance, executionError)

	var markerError section.MarkerNotFoundError
	require.ErrorAs(testInstance, executionError, &markerError)
	require.Equal(testInstance, section.MarkerRoleStart, markerError.Role)

	exists, existsError := afero.Exists(fileSystem, "gh_repo_list.json")
	require.NoError(testInstance, existsError)
	require.True(testInstance, exists)
}
