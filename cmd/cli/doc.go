// Package cli constructs the ghdash command-line interface, wiring the Cobra
// command hierarchy, dotenv and Viper configuration loading, and zap logging.
package cli
