// Package artifact persists the fetched repository records as a pretty-printed
// JSON document.
package artifact
