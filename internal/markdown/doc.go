// Package markdown renders repository list items as Markdown bullet lines.
package markdown
