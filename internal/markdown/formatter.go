package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/temirov/ghdash/internal/repository"
)

const (
	// DefaultDescriptionLimit is the number of description bytes kept before truncation.
	DefaultDescriptionLimit = 60

	listItemTemplateConstant                = "* [%s](%s)"
	listItemWithDescriptionTemplateConstant = "* [%s](%s) — %s"
	truncationSuffixConstant                = "..."
	lineSeparatorConstant                   = "\n"
)

// Formatter turns list items into Markdown bullets.
type Formatter struct {
	descriptionLimit int
}

// NewFormatter constructs a Formatter truncating descriptions longer than descriptionLimit bytes.
// Non-positive limits fall back to DefaultDescriptionLimit.
func NewFormatter(descriptionLimit int) Formatter {
	if descriptionLimit <= 0 {
		descriptionLimit = DefaultDescriptionLimit
	}
	return Formatter{descriptionLimit: descriptionLimit}
}

// FormatListItem renders a single bullet line for the item.
func (formatter Formatter) FormatListItem(item repository.ListItem) string {
	if len(item.Description) == 0 {
		return fmt.Sprintf(listItemTemplateConstant, item.Name, item.URL)
	}

	descriptionLimit := formatter.resolveDescriptionLimit()
	if len(item.Description) > descriptionLimit {
		truncatedDescription := truncateAtRuneBoundary(item.Description, descriptionLimit) + truncationSuffixConstant
		return fmt.Sprintf(listItemWithDescriptionTemplateConstant, item.Name, item.URL, truncatedDescription)
	}

	return fmt.Sprintf(listItemWithDescriptionTemplateConstant, item.Name, item.URL, item.Description)
}

// Render formats every item and joins the bullets with newlines in input order.
func (formatter Formatter) Render(items []repository.ListItem) string {
	formattedLines := make([]string, 0, len(items))
	for _, item := range items {
		formattedLines = append(formattedLines, formatter.FormatListItem(item))
	}
	return strings.Join(formattedLines, lineSeparatorConstant)
}

func (formatter Formatter) resolveDescriptionLimit() int {
	if formatter.descriptionLimit <= 0 {
		return DefaultDescriptionLimit
	}
	return formatter.descriptionLimit
}

// truncateAtRuneBoundary keeps at most limit bytes without splitting a multi-byte rune.
func truncateAtRuneBoundary(text string, limit int) string {
	cutIndex := limit
	for cutIndex > 0 && !utf8.RuneStart(text[cutIndex]) {
		cutIndex--
	}
	return text[:cutIndex]
}

// FormatListItem renders a bullet using DefaultDescriptionLimit.
func FormatListItem(item repository.ListItem) string {
	return NewFormatter(DefaultDescriptionLimit).FormatListItem(item)
}
