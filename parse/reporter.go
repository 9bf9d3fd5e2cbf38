package parse

import (
	"strings"
	"unicode"

	"github.com/npillmayer/gram/lex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// stripControl removes control runes (but not the newlines we split on
// beforehand) from an excerpt before it is shown to a user, so a stray
// tab or NUL byte in bad input can't corrupt the caret alignment below it.
var stripControl = runes.Remove(runes.In(unicode.Cc))

// contextWindow is how many columns of context excerptWithCaret keeps on
// either side of the offending span before eliding the rest as "... ",
// per spec §4.6.
const contextWindow = 5

// caretWidth returns how many columns excerptWithCaret should underline for
// span: the token's own width, or a single column for an empty span (the
// $end sentinel has no text to underline).
func caretWidth(span lex.Span) int {
	if span.Len() == 0 {
		return 1
	}
	return span.Len()
}

// excerptWithCaret renders the line containing offsetInLine, underlining
// width columns starting there, eliding context beyond contextWindow
// columns on either side as "... " / " ...". Grounded on spec §4.6's
// "line + caret" error presentation.
func excerptWithCaret(src string, lineStart, offsetInLine, width int) string {
	lineEnd := strings.IndexByte(src[lineStart:], '\n')
	var line string
	if lineEnd < 0 {
		line = src[lineStart:]
	} else {
		line = src[lineStart : lineStart+lineEnd]
	}
	clean, _, err := transform.String(stripControl, line)
	if err != nil {
		clean = line
	} else if offsetInLine <= len(line) {
		// measure the column in the cleaned line, so runes removed before
		// the offset do not push the caret to the right
		if pre, _, err := transform.String(stripControl, line[:offsetInLine]); err == nil {
			offsetInLine = len(pre)
		}
	}
	if offsetInLine > len(clean) {
		offsetInLine = len(clean)
	}
	if width < 1 {
		width = 1
	}
	markEnd := offsetInLine + width
	if markEnd > len(clean) {
		markEnd = len(clean)
	}

	visibleStart := 0
	prefix := ""
	if offsetInLine > contextWindow {
		visibleStart = offsetInLine - contextWindow
		prefix = "... "
	}
	visibleEnd := len(clean)
	suffix := ""
	if len(clean)-markEnd > contextWindow {
		visibleEnd = markEnd + contextWindow
		suffix = " ..."
	}

	shown := prefix + clean[visibleStart:visibleEnd] + suffix
	caretCol := len(prefix) + (offsetInLine - visibleStart)
	carets := markEnd - offsetInLine
	if carets < 1 {
		carets = 1 // end of line: mark the column just past the last one
	}
	caret := strings.Repeat(" ", caretCol) + strings.Repeat("^", carets)
	return shown + "\n" + caret
}

// lineStartOf returns the byte offset of the start of the line containing
// offset, and offset's column within that line.
func lineStartOf(src string, offset int) (int, int) {
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	return start, offset - start
}
