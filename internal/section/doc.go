// Package section locates and rewrites machine-managed regions of text files.
//
// A region is delimited by a pair of HTML comment markers,
// <!--START_SECTION:name--> and <!--END_SECTION:name-->, each on its own line.
// Locate finds the marker lines in a buffer, Splice rebuilds a buffer with a
// new body between them, and Replacer applies Splice to a file through an
// afero filesystem.
package section
