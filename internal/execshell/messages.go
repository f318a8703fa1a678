package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant             = "Running %s"
	genericSuccessTemplateConstant           = "Completed %s"
	genericFailureTemplateConstant           = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant  = "%s failed: %s"
	repoListStartTemplateConstant            = "Listing repositories for %s"
	repoListSuccessTemplateConstant          = "Listed repositories for %s"
	repoListFailureTemplateConstant          = "Failed to list repositories for %s (exit code %d%s)"
	repoListExecutionFailureTemplateConstant = "Unable to list repositories for %s: %s"
	workingDirectorySuffixTemplateConstant   = " (in %s)"
	standardErrorSuffixTemplateConstant      = ": %s"
	commandArgumentsJoinSeparatorConstant    = " "
	authenticatedUserLabelConstant           = "the authenticated user"
	unknownFailureMessageConstant            = "unknown error"
	flagPrefixConstant                       = "-"
	githubRepoSubcommandNameConstant         = "repo"
	githubListSubcommandNameConstant         = "list"
	githubRepoListOwnerArgumentIndexConstant = 2
)

// flags of gh repo list that consume the following argument
var githubRepoListValueFlags = map[string]struct{}{
	"--json":       {},
	"--limit":      {},
	"-L":           {},
	"--language":   {},
	"--topic":      {},
	"--visibility": {},
	"--jq":         {},
	"-q":           {},
	"--template":   {},
	"-t":           {},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited cleanly.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a command that could not run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGitHub && formatter.isRepoListCommand(command.Details.Arguments) {
		return formatter.describeRepoList(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) isRepoListCommand(arguments []string) bool {
	if len(arguments) < 2 {
		return false
	}
	return strings.TrimSpace(arguments[0]) == githubRepoSubcommandNameConstant && strings.TrimSpace(arguments[1]) == githubListSubcommandNameConstant
}

func (formatter CommandMessageFormatter) describeRepoList(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	owner := formatter.extractRepoListOwner(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(repoListStartTemplateConstant, owner)
	case messageStageSuccess:
		return fmt.Sprintf(repoListSuccessTemplateConstant, owner)
	case messageStageFailure:
		return fmt.Sprintf(repoListFailureTemplateConstant, owner, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(repoListExecutionFailureTemplateConstant, owner, formatter.describeFailure(failure))
	}
}

// extractRepoListOwner returns the first positional argument after "repo list".
func (formatter CommandMessageFormatter) extractRepoListOwner(arguments []string) string {
	for argumentIndex := githubRepoListOwnerArgumentIndexConstant; argumentIndex < len(arguments); argumentIndex++ {
		argument := strings.TrimSpace(arguments[argumentIndex])
		if strings.HasPrefix(argument, flagPrefixConstant) {
			if _, consumesValue := githubRepoListValueFlags[argument]; consumesValue {
				argumentIndex++
			}
			continue
		}
		if len(argument) > 0 {
			return argument
		}
	}
	return authenticatedUserLabelConstant
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return commandLabel + fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
