package main

import (
	"html"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"

	"storycanvas/internal/story"
)

// tabWidth is how many spaces a pasted tab becomes. The label font has no
// tab stops, so a raw tab would measure as nothing.
const tabWidth = 4

var readClipboard = readClipboardText

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		// Ask for the plain flavor so rich text does not arrive as RTF.
		if out, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(out), nil
		}
	}
	return clipboard.ReadAll()
}

// pasteIntoDraft inserts the clipboard at the composer cursor and updates
// the draft to match.
func (m *model) pasteIntoDraft() error {
	cs := m.canvas
	if cs == nil || cs.session.Mode() != story.ModeComposing {
		return nil
	}
	raw, err := readClipboard()
	if err != nil {
		return err
	}
	text := labelText(raw)
	if text == "" {
		return nil
	}
	cs.composer.InsertString(text)
	cs.session.SetDraftText(cs.composer.Value())
	return nil
}

// labelText turns clipboard content into plain text a label can measure.
func labelText(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	switch {
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = stripHTML(text)
	}
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func isRTF(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "{\\rtf")
}

func isHTML(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if !strings.HasPrefix(t, "<") {
		return false
	}
	for _, tag := range []string{"<html", "<body", "<div", "<p", "<span", "<meta"} {
		if strings.Contains(t, tag) {
			return true
		}
	}
	return false
}

// htmlBreaks are the tags that end a line of text.
var htmlBreaks = map[string]bool{
	"br": true, "/p": true, "/div": true, "/li": true, "/tr": true,
	"/h1": true, "/h2": true, "/h3": true, "/h4": true, "/h5": true, "/h6": true,
}

func stripHTML(text string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(text, '<')
		if open < 0 {
			b.WriteString(collapseSpace(text))
			break
		}
		b.WriteString(collapseSpace(text[:open]))
		end := strings.IndexByte(text[open:], '>')
		if end < 0 {
			break
		}
		if htmlBreaks[tagName(text[open+1:open+end])] {
			b.WriteByte('\n')
		}
		text = text[open+end+1:]
	}

	lines := strings.Split(html.UnescapeString(b.String()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func tagName(tag string) string {
	fields := strings.Fields(strings.ToLower(tag))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[0], "/")
}

// collapseSpace folds whitespace runs into one space, the way HTML text is
// laid out.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// rtfDestinations are groups that carry document metadata rather than text.
var rtfDestinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true, "pict": true,
}

func stripRTF(text string) string {
	var b strings.Builder
	runes := []rune(text)
	depth := 0
	// skip is the group depth of the destination being skipped, 0 for none.
	skip := 0
	emit := func(r rune) {
		if skip == 0 {
			b.WriteRune(r)
		}
	}

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '{':
			depth++
			continue
		case '}':
			if skip == depth {
				skip = 0
			}
			depth--
			continue
		case '\n':
			continue
		case '\\':
		default:
			emit(r)
			continue
		}

		if i+1 >= len(runes) {
			break
		}
		if next := runes[i+1]; !isASCIILetter(next) {
			i++
			switch next {
			case '\\', '{', '}':
				emit(next)
			case '*':
				if skip == 0 {
					skip = depth
				}
			case '\'':
				if i+2 < len(runes) {
					if v, err := strconv.ParseUint(string(runes[i+1:i+3]), 16, 8); err == nil {
						emit(rune(v))
					}
					i += 2
				}
			}
			continue
		}

		j := i + 1
		for j < len(runes) && isASCIILetter(runes[j]) {
			j++
		}
		word := string(runes[i+1 : j])
		if j < len(runes) && runes[j] == '-' {
			j++
		}
		for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
			j++
		}
		if j < len(runes) && runes[j] == ' ' {
			j++
		}
		i = j - 1

		switch {
		case rtfDestinations[word]:
			if skip == 0 {
				skip = depth
			}
		case word == "par" || word == "line":
			emit('\n')
		case word == "tab":
			emit('\t')
		}
	}
	return b.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
