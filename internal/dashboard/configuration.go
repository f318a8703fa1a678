package dashboard

import (
	"fmt"
	"strings"

	"github.com/temirov/ghdash/internal/githubcli"
	"github.com/temirov/ghdash/internal/markdown"
	"github.com/temirov/ghdash/internal/section"
	pathutils "github.com/temirov/ghdash/internal/utils/path"
)

const (
	defaultMarkdownPathConstant               = "README.md"
	defaultJSONPathConstant                   = "gh_repo_list.json"
	defaultSectionTagConstant                 = "tag_1"
	invalidConfigurationTemplateConstant      = "invalid dashboard configuration %s: %s"
	invalidConfigurationCauseTemplateConstant = "invalid dashboard configuration %s: %v"
	pathRequiredMessageConstant               = "path must be provided"
	positiveValueRequiredMessageConstant      = "value must be positive"
	ownerWhitespaceMessageConstant            = "value must not contain whitespace"

	// Configuration keys beneath the dashboard section.
	ConfigurationKeyMarkdownPath     = "markdown_path"
	ConfigurationKeyJSONPath         = "json_path"
	ConfigurationKeySectionTag       = "section_tag"
	ConfigurationKeyDescriptionLimit = "description_limit"
	ConfigurationKeyRepositoryLimit  = "repository_limit"
	ConfigurationKeyOwner            = "owner"
	ConfigurationKeySourceOnly       = "source_only"
	ConfigurationKeyReplaceStrategy  = "replace_strategy"
)

// CommandConfiguration captures persistent settings for the update command.
type CommandConfiguration struct {
	MarkdownPath     string `mapstructure:"markdown_path" yaml:"markdown_path"`
	JSONPath         string `mapstructure:"json_path" yaml:"json_path"`
	SectionTag       string `mapstructure:"section_tag" yaml:"section_tag"`
	DescriptionLimit int    `mapstructure:"description_limit" yaml:"description_limit"`
	RepositoryLimit  int    `mapstructure:"repository_limit" yaml:"repository_limit"`
	Owner            string `mapstructure:"owner" yaml:"owner"`
	SourceOnly       bool   `mapstructure:"source_only" yaml:"source_only"`
	ReplaceStrategy  string `mapstructure:"replace_strategy" yaml:"replace_strategy"`
}

// InvalidConfigurationError reports a configuration value rejected before any work starts.
type InvalidConfigurationError struct {
	Key     string
	Message string
	Cause   error
}

// Error describes the rejected value.
func (configurationError InvalidConfigurationError) Error() string {
	if configurationError.Cause != nil {
		return fmt.Sprintf(invalidConfigurationCauseTemplateConstant, configurationError.Key, configurationError.Cause)
	}
	return fmt.Sprintf(invalidConfigurationTemplateConstant, configurationError.Key, configurationError.Message)
}

// Unwrap exposes the underlying validation failure.
func (configurationError InvalidConfigurationError) Unwrap() error {
	return configurationError.Cause
}

// DefaultCommandConfiguration returns baseline configuration values for the update command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		MarkdownPath:     defaultMarkdownPathConstant,
		JSONPath:         defaultJSONPathConstant,
		SectionTag:       defaultSectionTagConstant,
		DescriptionLimit: markdown.DefaultDescriptionLimit,
		RepositoryLimit:  githubcli.DefaultRepositoryLimit,
		Owner:            "",
		SourceOnly:       true,
		ReplaceStrategy:  string(section.StrategyAtomic),
	}
}

// Sanitize trims values and expands a leading "~" in both paths. Empty strategy falls back to atomic.
func (configuration CommandConfiguration) Sanitize(expander *pathutils.HomeExpander) CommandConfiguration {
	sanitized := configuration

	sanitized.MarkdownPath = expander.Expand(strings.TrimSpace(configuration.MarkdownPath))
	sanitized.JSONPath = expander.Expand(strings.TrimSpace(configuration.JSONPath))
	sanitized.SectionTag = strings.TrimSpace(configuration.SectionTag)
	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.ReplaceStrategy = strings.ToLower(strings.TrimSpace(configuration.ReplaceStrategy))
	if len(sanitized.ReplaceStrategy) == 0 {
		sanitized.ReplaceStrategy = string(section.StrategyAtomic)
	}

	return sanitized
}

// Validate rejects configurations that cannot produce a run.
func (configuration CommandConfiguration) Validate() error {
	if len(configuration.MarkdownPath) == 0 {
		return InvalidConfigurationError{Key: ConfigurationKeyMarkdownPath, Message: pathRequiredMessageConstant}
	}
	if len(configuration.JSONPath) == 0 {
		return InvalidConfigurationError{Key: ConfigurationKeyJSONPath, Message: pathRequiredMessageConstant}
	}
	if sectionError := section.NewCommentSection(configuration.SectionTag).Validate(); sectionError != nil {
		return InvalidConfigurationError{Key: ConfigurationKeySectionTag, Cause: sectionError}
	}
	if configuration.DescriptionLimit <= 0 {
		return InvalidConfigurationError{Key: ConfigurationKeyDescriptionLimit, Message: positiveValueRequiredMessageConstant}
	}
	if configuration.RepositoryLimit <= 0 {
		return InvalidConfigurationError{Key: ConfigurationKeyRepositoryLimit, Message: positiveValueRequiredMessageConstant}
	}
	if strings.ContainsAny(configuration.Owner, " \t\r\n") {
		return InvalidConfigurationError{Key: ConfigurationKeyOwner, Message: ownerWhitespaceMessageConstant}
	}
	if _, strategyError := section.ParseStrategy(configuration.ReplaceStrategy); strategyError != nil {
		return InvalidConfigurationError{Key: ConfigurationKeyReplaceStrategy, Cause: strategyError}
	}
	return nil
}

// UpdateOptions converts a validated configuration into orchestrator options.
func (configuration CommandConfiguration) UpdateOptions(dryRun bool) UpdateOptions {
	return UpdateOptions{
		MarkdownPath:     configuration.MarkdownPath,
		JSONPath:         configuration.JSONPath,
		Section:          section.NewCommentSection(configuration.SectionTag),
		DescriptionLimit: configuration.DescriptionLimit,
		Listing: githubcli.RepositoryListOptions{
			Owner:       configuration.Owner,
			SourceOnly:  configuration.SourceOnly,
			ResultLimit: configuration.RepositoryLimit,
		},
		DryRun: dryRun,
	}
}
