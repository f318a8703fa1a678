package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	configurationCommandUseConstant                  = "config"
	configurationCommandShortDescriptionConstant     = "Inspect the effective configuration"
	configurationShowCommandUseConstant              = "show"
	configurationShowCommandShortDescriptionConstant = "Print the merged configuration as YAML"
	configurationProviderMissingMessageConstant      = "configuration provider not configured"
	configurationEncodingErrorTemplateConstant       = "unable to encode configuration: %w"
)

var errConfigurationProviderMissing = errors.New(configurationProviderMissingMessageConstant)

type configurationCommandBuilder struct {
	ConfigurationProvider func() ApplicationConfiguration
}

func (builder configurationCommandBuilder) Build() *cobra.Command {
	configurationCommand := &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	showCommand := &cobra.Command{
		Use:           configurationShowCommandUseConstant,
		Short:         configurationShowCommandShortDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.show,
	}

	configurationCommand.AddCommand(showCommand)
	return configurationCommand
}

func (builder configurationCommandBuilder) show(command *cobra.Command, arguments []string) error {
	if builder.ConfigurationProvider == nil {
		return errConfigurationProviderMissing
	}

	encoder := yaml.NewEncoder(command.OutOrStdout())
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(builder.ConfigurationProvider()); encodeError != nil {
		return fmt.Errorf(configurationEncodingErrorTemplateConstant, encodeError)
	}
	return encoder.Close()
}
