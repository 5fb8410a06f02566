package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the commands accepted at the start of a line.
var ctrlCommands = []string{
	":clear", ":edit", ":funcs", ":help", ":quit", ":reset", ":stack",
}

// tagKeywords are the control tags of the template language.
var tagKeywords = []string{
	"cond", "defn", "do", "else", "for", "if", "let", "nb", "v",
}

// isWordBoundary reports whether r delimits a completion word. Hyphens,
// dots and colons are kept inside words since names may contain them.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '<', '>', '/', '=', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits between
// two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// openTag finds the tag left open before pos. It returns the tag name and
// the number of complete words between the tag's "<" and pos: 0 while the
// tag name is being typed, 1 at its first attribute, and so on. Closing tags
// count as their name. Quoted attribute values are not interpreted.
func openTag(input string, pos int) (tag string, words int, ok bool) {
	pos = min(pos, len(input))

	lt := strings.LastIndexByte(input[:pos], '<')
	if lt < 0 || strings.IndexByte(input[lt:pos], '>') >= 0 {
		return "", 0, false
	}

	body := strings.TrimPrefix(input[lt+1:pos], "/")
	fields := strings.FieldsFunc(body, isWordBoundary)

	words = len(fields)
	if words > 0 && !strings.HasSuffix(body, " ") && !strings.HasSuffix(body, "\t") {
		words--
	}

	if len(fields) > 0 {
		tag = fields[0]
	}

	return strings.ToLower(tag), words, true
}

// candidates returns the completions valid for a word starting at
// wordStart: commands at the start of a ":" line, tag keywords after "<",
// and function names for the first attribute of a DO tag.
func candidates(sess *session, input string, wordStart int) []string {
	if wordStart == 0 && strings.HasPrefix(input, ":") {
		return ctrlCommands
	}

	tag, words, ok := openTag(input, wordStart)

	switch {
	case !ok:
		return nil

	case words == 0:
		return tagKeywords

	case words == 1 && tag == "do":
		return sess.funcs()
	}

	return nil
}

// computeMatches calculates the fuzzy matches for the word at the cursor,
// ranked best-first. An empty word in a completable position matches every
// candidate so the user can browse them.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	list := candidates(m.session, input, wordStart)
	if len(list) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		matches = make(fuzzy.Matches, len(list))
		for i, c := range list {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, list), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// signatureHint describes the function named by a DO tag open at the
// cursor, highlighting the argument being typed. It returns "" outside a
// DO tag's arguments or for an unknown function.
func signatureHint(sess *session, input string, cursor int) string {
	tag, words, ok := openTag(input, cursor)
	if !ok || tag != "do" || words < 2 {
		return ""
	}

	lt := strings.LastIndexByte(input[:cursor], '<')
	fields := strings.FieldsFunc(input[lt+1:cursor], isWordBoundary)

	name := fields[1]

	params, ok := sess.signature(name)
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == words-2 {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
