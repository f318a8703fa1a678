// Package githubcli wraps the GitHub CLI for ghdash workflows.
//
// Client issues gh repo list through execshell and decodes the JSON response
// into repository records, so the GitHub interaction can be stubbed in tests.
package githubcli
