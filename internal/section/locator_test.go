package section_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghdash/internal/section"
)

const (
	testSectionNameConstant = "tag_1"
	testDocumentConstant    = "# README Test\n\nThis is a dashboard to display all users projects.\n\n<!--START_SECTION:tag_1-->\n<!--END_SECTION:tag_1-->\n\n# LICENSE\n\nLorem ipsum dolor sit amet."
)

func TestCommentSectionMarkers(testInstance *testing.T) {
	commentSection := section.NewCommentSection("  tag_1 \n")
	require.Equal(testInstance, testSectionNameConstant, commentSection.Name())
	require.Equal(testInstance, "<!--START_SECTION:tag_1-->", commentSection.StartMarker())
	require.Equal(testInstance, "<!--END_SECTION:tag_1-->", commentSection.EndMarker())
	require.NoError(testInstance, commentSection.Validate())
}

func TestCommentSectionValidation(testInstance *testing.T) {
	testCases := []struct {
		name        string
		sectionName string
		expectError error
		errorType   any
	}{
		{name: "empty_name", sectionName: "   ", expectError: section.ErrSectionNameRequired},
		{name: "closing_syntax", sectionName: "tag-->", errorType: section.InvalidSectionNameError{}},
		{name: "opening_syntax", sectionName: "<!--tag", errorType: section.InvalidSectionNameError{}},
		{name: "embedded_newline", sectionName: "tag\n1", errorType: section.InvalidSectionNameError{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			validationError := section.NewCommentSection(testCase.sectionName).Validate()
			require.Error(testInstance, validationError)
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, validationError, testCase.expectError)
			}
			if testCase.errorType != nil {
				require.IsType(testInstance, testCase.errorType, validationError)
			}
		})
	}
}

func TestLocate(testInstance *testing.T) {
	commentSection := section.NewCommentSection(testSectionNameConstant)

	testCases := []struct {
		name             string
		buffer           string
		expectedLocation section.Location
		expectedRole     section.MarkerRole
		expectNotFound   bool
		expectOrderError bool
	}{
		{
			name:             "markers_with_body",
			buffer:           "<!--START_SECTION:tag_1-->\nline A\nline B\n<!--END_SECTION:tag_1-->",
			expectedLocation: section.Location{StartLine: 0, EndLine: 3},
		},
		{
			name:             "adjacent_markers_in_document",
			buffer:           testDocumentConstant,
			expectedLocation: section.Location{StartLine: 4, EndLine: 5},
		},
		{
			name:             "first_occurrence_wins",
			buffer:           "<!--START_SECTION:tag_1-->\n<!--END_SECTION:tag_1-->\n<!--START_SECTION:tag_1-->\n<!--END_SECTION:tag_1-->\n",
			expectedLocation: section.Location{StartLine: 0, EndLine: 1},
		},
		{
			name:           "missing_start",
			buffer:         "text\n<!--END_SECTION:tag_1-->",
			expectNotFound: true,
			expectedRole:   section.MarkerRoleStart,
		},
		{
			name:           "missing_end",
			buffer:         "<!--START_SECTION:tag_1-->\ntext",
			expectNotFound: true,
			expectedRole:   section.MarkerRoleEnd,
		},
		{
			name:             "end_before_start",
			buffer:           "<!--END_SECTION:tag_1-->\n<!--START_SECTION:tag_1-->",
			expectOrderError: true,
		},
		{
			name:             "markers_on_same_line",
			buffer:           "<!--START_SECTION:tag_1--><!--END_SECTION:tag_1-->",
			expectOrderError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			location, locateError := section.Locate(testCase.buffer, commentSection)
			switch {
			case testCase.expectNotFound:
				require.Error(testInstance, locateError)
				markerError, isMarkerError := locateError.(section.MarkerNotFoundError)
				require.True(testInstance, isMarkerError)
				require.Equal(testInstance, testCase.expectedRole, markerError.Role)
			case testCase.expectOrderError:
				require.ErrorIs(testInstance, locateError, section.ErrMarkerOrder)
			default:
				require.NoError(testInstance, locateError)
				require.Equal(testInstance, testCase.expectedLocation, location)
			}
		})
	}
}

func TestLocateHandlesArbitraryBodies(testInstance *testing.T) {
	commentSection := section.NewCommentSection(testSectionNameConstant)
	for lineCount := 0; lineCount < 40; lineCount++ {
		bodyLines := make([]string, 0, lineCount)
		for lineIndex := 0; lineIndex < lineCount; lineIndex++ {
			bodyLines = append(bodyLines, strings.Repeat("x", lineIndex))
		}
		buffer := commentSection.StartMarker() + "\n"
		if lineCount > 0 {
			buffer += strings.Join(bodyLines, "\n") + "\n"
		}
		buffer += commentSection.EndMarker()

		location, locateError := section.Locate(buffer, commentSection)
		require.NoError(testInstance, locateError)
		require.Equal(testInstance, 0, location.StartLine)
		require.Equal(testInstance, lineCount+1, location.EndLine)
	}
}

func TestSplice(testInstance *testing.T) {
	commentSection := section.NewCommentSection(testSectionNameConstant)

	testCases := []struct {
		name     string
		buffer   string
		body     string
		expected string
	}{
		{
			name:     "fills_empty_section",
			buffer:   testDocumentConstant,
			body:     "* [foo](https://x/foo)\n* [bar](https://x/bar) — a short blurb",
			expected: "# README Test\n\nThis is a dashboard to display all users projects.\n\n<!--START_SECTION:tag_1-->\n* [foo](https://x/foo)\n* [bar](https://x/bar) — a short blurb\n<!--END_SECTION:tag_1-->\n\n# LICENSE\n\nLorem ipsum dolor sit amet.\n",
		},
		{
			name:     "discards_previous_body",
			buffer:   "intro\n<!--START_SECTION:tag_1-->\nstale one\nstale two\n<!--END_SECTION:tag_1-->\noutro\n",
			body:     "fresh",
			expected: "intro\n<!--START_SECTION:tag_1-->\nfresh\n<!--END_SECTION:tag_1-->\noutro\n",
		},
		{
			name:     "empty_body_leaves_markers_adjacent",
			buffer:   "<!--START_SECTION:tag_1-->\nstale\n<!--END_SECTION:tag_1-->\n",
			body:     "",
			expected: "<!--START_SECTION:tag_1-->\n<!--END_SECTION:tag_1-->\n",
		},
		{
			name:     "normalizes_carriage_returns",
			buffer:   "intro\r\n<!--START_SECTION:tag_1-->\r\nstale\r\n<!--END_SECTION:tag_1-->\r\n",
			body:     "fresh",
			expected: "intro\n<!--START_SECTION:tag_1-->\nfresh\n<!--END_SECTION:tag_1-->\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			spliced, spliceError := section.Splice(testCase.buffer, testCase.body, commentSection)
			require.NoError(testInstance, spliceError)
			require.Equal(testInstance, testCase.expected, spliced)
			require.Equal(testInstance, 1, strings.Count(spliced, commentSection.StartMarker()))
			require.Equal(testInstance, 1, strings.Count(spliced, commentSection.EndMarker()))
		})
	}
}

func TestSpliceIsIdempotent(testInstance *testing.T) {
	commentSection := section.NewCommentSection(testSectionNameConstant)
	body := "* [foo](https://x/foo)\n* [bar](https://x/bar)"

	firstPass, firstError := section.Splice(testDocumentConstant, body, commentSection)
	require.NoError(testInstance, firstError)
	secondPass, secondError := section.Splice(firstPass, body, commentSection)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, firstPass, secondPass)
}
