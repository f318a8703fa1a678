package dashboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghdash/internal/artifact"
	"github.com/temirov/ghdash/internal/execshell"
	"github.com/temirov/ghdash/internal/githubcli"
	"github.com/temirov/ghdash/internal/section"
	"github.com/temirov/ghdash/internal/ui"
	"github.com/temirov/ghdash/internal/utils/flags"
	pathutils "github.com/temirov/ghdash/internal/utils/path"
)

const (
	commandUseConstant                      = "update"
	commandShortDescriptionConstant         = "Refresh the repository list in a Markdown file and a JSON artifact"
	commandLongDescriptionConstant          = "update lists repositories with gh, writes the full listing to a JSON file, and rewrites the section between <!--START_SECTION:tag--> and <!--END_SECTION:tag--> in a Markdown file."
	commandExecutionErrorTemplateConstant   = "dashboard update failed: %w"
	unexpectedArgumentsMessageConstant      = "update does not accept positional arguments"
	dryRunOutputTemplateConstant            = "%s\n"
	flagMarkdownNameConstant                = "markdown"
	flagMarkdownDescriptionConstant         = "Markdown file containing the managed section"
	flagJSONNameConstant                    = "json"
	flagJSONDescriptionConstant             = "Destination of the JSON repository artifact"
	flagSectionNameConstant                 = "section"
	flagSectionDescriptionConstant          = "Name of the managed section"
	flagLimitNameConstant                   = "limit"
	flagLimitDescriptionConstant            = "Maximum number of repositories to list"
	flagDescriptionLimitNameConstant        = "description-limit"
	flagDescriptionLimitDescriptionConstant = "Maximum description length before truncation"
	flagOwnerNameConstant                   = "owner"
	flagOwnerDescriptionConstant            = "User or organization to list (defaults to the authenticated user)"
	flagSourceOnlyNameConstant              = "source-only"
	flagSourceOnlyDescriptionConstant       = "Exclude forks from the listing"
	flagReplaceStrategyNameConstant         = "replace-strategy"
	flagReplaceStrategyDescriptionConstant  = "How the Markdown file is rewritten"
	flagDryRunNameConstant                  = "dry-run"
	flagDryRunDescriptionConstant           = "Print the rendered section without writing files"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved update configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the Cobra command for dashboard updates.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	RepositoryLister      RepositoryLister
	FileSystem            afero.Fs
	HomeExpander          *pathutils.HomeExpander

	// HumanReadableLoggingProvider reports whether gh lifecycle events are rendered as console messages
	// instead of the executor's structured entries.
	HumanReadableLoggingProvider func() bool
}

// Build constructs the update command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		RunE:          builder.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := DefaultCommandConfiguration()
	strategyValue := flags.NewChoiceValue(defaults.ReplaceStrategy, []string{string(section.StrategyAtomic), string(section.StrategyRecreate)})

	command.Flags().String(flagMarkdownNameConstant, defaults.MarkdownPath, flagMarkdownDescriptionConstant)
	command.Flags().String(flagJSONNameConstant, defaults.JSONPath, flagJSONDescriptionConstant)
	command.Flags().String(flagSectionNameConstant, defaults.SectionTag, flagSectionDescriptionConstant)
	command.Flags().Int(flagLimitNameConstant, defaults.RepositoryLimit, flagLimitDescriptionConstant)
	command.Flags().Int(flagDescriptionLimitNameConstant, defaults.DescriptionLimit, flagDescriptionLimitDescriptionConstant)
	command.Flags().String(flagOwnerNameConstant, defaults.Owner, flagOwnerDescriptionConstant)
	command.Flags().Bool(flagSourceOnlyNameConstant, defaults.SourceOnly, flagSourceOnlyDescriptionConstant)
	command.Flags().Var(strategyValue, flagReplaceStrategyNameConstant, strategyValue.Usage(flagReplaceStrategyDescriptionConstant))
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.applyFlagOverrides(command, builder.resolveConfiguration()).Sanitize(builder.resolveHomeExpander())
	if validationError := configuration.Validate(); validationError != nil {
		return validationError
	}

	strategy, _ := section.ParseStrategy(configuration.ReplaceStrategy)
	dryRun, _ := command.Flags().GetBool(flagDryRunNameConstant)

	logger := builder.resolveLogger()
	lister, listerError := builder.resolveRepositoryLister(logger)
	if listerError != nil {
		return listerError
	}

	fileSystem := builder.resolveFileSystem()
	service, serviceError := NewService(
		logger,
		lister,
		section.NewReplacer(fileSystem, strategy, logger),
		artifact.NewJSONWriter(fileSystem, logger),
	)
	if serviceError != nil {
		return serviceError
	}

	result, runError := service.Run(command.Context(), configuration.UpdateOptions(dryRun))
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	if dryRun {
		return writeDryRunBody(command.OutOrStdout(), result.Body)
	}
	return nil
}

// applyFlagOverrides replaces configured values with explicitly provided flags.
func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	commandFlags := command.Flags()
	overridden := configuration

	if commandFlags.Changed(flagMarkdownNameConstant) {
		overridden.MarkdownPath, _ = commandFlags.GetString(flagMarkdownNameConstant)
	}
	if commandFlags.Changed(flagJSONNameConstant) {
		overridden.JSONPath, _ = commandFlags.GetString(flagJSONNameConstant)
	}
	if commandFlags.Changed(flagSectionNameConstant) {
		overridden.SectionTag, _ = commandFlags.GetString(flagSectionNameConstant)
	}
	if commandFlags.Changed(flagLimitNameConstant) {
		overridden.RepositoryLimit, _ = commandFlags.GetInt(flagLimitNameConstant)
	}
	if commandFlags.Changed(flagDescriptionLimitNameConstant) {
		overridden.DescriptionLimit, _ = commandFlags.GetInt(flagDescriptionLimitNameConstant)
	}
	if commandFlags.Changed(flagOwnerNameConstant) {
		overridden.Owner, _ = commandFlags.GetString(flagOwnerNameConstant)
	}
	if commandFlags.Changed(flagSourceOnlyNameConstant) {
		overridden.SourceOnly, _ = commandFlags.GetBool(flagSourceOnlyNameConstant)
	}
	if commandFlags.Changed(flagReplaceStrategyNameConstant) {
		overridden.ReplaceStrategy = commandFlags.Lookup(flagReplaceStrategyNameConstant).Value.String()
	}

	return overridden
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveFileSystem() afero.Fs {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return afero.NewOsFs()
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}

func (builder *CommandBuilder) resolveRepositoryLister(logger *zap.Logger) (RepositoryLister, error) {
	if builder.RepositoryLister != nil {
		return builder.RepositoryLister, nil
	}

	if !builder.humanReadableLoggingEnabled() {
		shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
		if creationError != nil {
			return nil, creationError
		}
		return githubcli.NewClient(shellExecutor)
	}

	shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	return githubcli.NewClient(shellExecutor.WithObserver(ui.NewConsoleCommandEventLogger(logger)))
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func writeDryRunBody(output io.Writer, body string) error {
	_, writeError := fmt.Fprintf(output, dryRunOutputTemplateConstant, body)
	return writeError
}
