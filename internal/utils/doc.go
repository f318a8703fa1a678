// Package utils exposes reusable helpers consumed by the CLI commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// environment variables through Viper. EnvironmentLoader exports dotenv files
// before configuration is resolved, and LoggerFactory builds the zap loggers
// shared by every command.
package utils
