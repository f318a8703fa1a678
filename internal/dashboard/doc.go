// Package dashboard orchestrates a single refresh of the repository dashboard.
//
// A run lists repositories once, then writes the JSON artifact and rewrites the
// managed Markdown section concurrently. CommandBuilder exposes the run as the
// update command and merges configuration with flag overrides.
package dashboard
