// Package ui renders command lifecycle events as concise console messages.
package ui
