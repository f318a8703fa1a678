package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/ghdash/internal/execshell"
	"github.com/temirov/ghdash/internal/repository"
)

const (
	repoSubcommandConstant                  = "repo"
	listSubcommandConstant                  = "list"
	jsonFlagConstant                        = "--json"
	limitFlagConstant                       = "--limit"
	sourceFlagConstant                      = "--source"
	jsonFieldSeparatorConstant              = ","
	promptDisabledEnvironmentNameConstant   = "GH_PROMPT_DISABLED"
	promptDisabledEnvironmentValueConstant  = "1"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	repositoryLimitFieldNameConstant        = "limit"
	positiveValueRequiredMessageConstant    = "value must be positive"
	ownerFieldNameConstant                  = "owner"
	ownerWhitespaceMessageConstant          = "value must not contain whitespace"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	listRepositoriesOperationNameConstant   = OperationName("ListRepositories")

	// DefaultRepositoryLimit mirrors the limit used when no explicit value is configured.
	DefaultRepositoryLimit = 999
)

// RepositoryJSONFields lists the gh repo list fields decoded into repository.Record.
var RepositoryJSONFields = []string{
	"createdAt",
	"description",
	"diskUsage",
	"id",
	"name",
	"pushedAt",
	"repositoryTopics",
	"sshUrl",
	"stargazerCount",
	"updatedAt",
	"url",
}

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryListOptions configures ListRepositories queries.
type RepositoryListOptions struct {
	// Owner selects a user or organization; empty lists the authenticated user's repositories.
	Owner string
	// SourceOnly excludes forks.
	SourceOnly  bool
	ResultLimit int
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ListRepositories retrieves repository records using gh repo list, in the order gh reports them.
func (client *Client) ListRepositories(executionContext context.Context, options RepositoryListOptions) ([]repository.Record, error) {
	owner := strings.TrimSpace(options.Owner)
	if strings.ContainsAny(owner, " \t\r\n") {
		return nil, InvalidInputError{FieldName: ownerFieldNameConstant, Message: ownerWhitespaceMessageConstant}
	}

	resultLimit := options.ResultLimit
	if resultLimit == 0 {
		resultLimit = DefaultRepositoryLimit
	}
	if resultLimit < 0 {
		return nil, InvalidInputError{FieldName: repositoryLimitFieldNameConstant, Message: positiveValueRequiredMessageConstant}
	}

	arguments := []string{repoSubcommandConstant, listSubcommandConstant}
	if len(owner) > 0 {
		arguments = append(arguments, owner)
	}
	if options.SourceOnly {
		arguments = append(arguments, sourceFlagConstant)
	}
	arguments = append(arguments,
		limitFlagConstant,
		strconv.Itoa(resultLimit),
		jsonFlagConstant,
		strings.Join(RepositoryJSONFields, jsonFieldSeparatorConstant),
	)

	commandDetails := execshell.CommandDetails{
		Arguments:            arguments,
		EnvironmentVariables: map[string]string{promptDisabledEnvironmentNameConstant: promptDisabledEnvironmentValueConstant},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listRepositoriesOperationNameConstant, Cause: executionError}
	}

	var records []repository.Record
	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &records)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listRepositoriesOperationNameConstant, Cause: decodingError}
	}
	if records == nil {
		records = []repository.Record{}
	}

	return records, nil
}
