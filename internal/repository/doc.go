// Package repository defines the repository records fetched from GitHub and
// the reduced list item view rendered into Markdown.
package repository
