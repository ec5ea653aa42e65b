// Package rtf renders titled markdown-ish text as Rich Text Format documents.
//
// The accepted markup is what the model produces: "#", "##" and "###"
// headings, "-", "*" and "•" bullets, "1." numbered items, **bold** and
// *italic* spans. Everything else is plain paragraphs. Non-ASCII characters
// are written as \uN escapes so the output is pure 7-bit ASCII.
package rtf

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Document is the input of Render.
type Document struct {
	Title    string
	Subtitle string
	Content  string
}

// Chapter is the input of RenderChapter.
type Chapter struct {
	Number   int
	Title    string
	Subtitle string
	Content  string
}

const header = `{\rtf1\ansi\ansicpg1252\deff0\uc1{\fonttbl{\f0\froman\fcharset0 Times New Roman;}}` + "\n" +
	`\paperw12240\paperh15840\margl1440\margr1440\margt1440\margb1440` + "\n" +
	`\f0\fs24\sa200` + "\n"

// Font sizes are in half-points.
var headingSizes = map[int]int{1: 36, 2: 30, 3: 26}

var (
	headingRegex  = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	bulletRegex   = regexp.MustCompile(`^[-*•]\s+(.+)$`)
	numberedRegex = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
	boldRegex     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRegex   = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
)

// Render returns the RTF document for doc: a centered title, an optional
// italic subtitle and the formatted content.
func Render(doc Document) string {
	var b strings.Builder
	b.WriteString(header)
	writeTitle(&b, doc.Title, doc.Subtitle)
	writeBody(&b, doc.Content)
	b.WriteString("}")
	return b.String()
}

// RenderChapter returns the RTF document for one chapter, ending with a page
// break so chapters can be concatenated.
func RenderChapter(ch Chapter) string {
	var b strings.Builder
	b.WriteString(header)
	writeTitle(&b, fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Title), ch.Subtitle)
	writeBody(&b, ch.Content)
	b.WriteString(`\page` + "\n}")
	return b.String()
}

// Filename returns "<slug(title)>.rtf".
func Filename(title string) string {
	return Slug(title) + ".rtf"
}

// ChapterFilename returns "chapter-<n>-<slug(title)>.rtf".
func ChapterFilename(number int, title string) string {
	return fmt.Sprintf("chapter-%d-%s.rtf", number, Slug(title))
}

// Slug lower-cases title and joins its letters and digits with dashes. It
// returns "document" when nothing is left.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}

func writeTitle(b *strings.Builder, title, subtitle string) {
	fmt.Fprintf(b, `{\pard\qc\b\fs40 %s\par}`+"\n", Escape(strings.TrimSpace(title)))
	if s := strings.TrimSpace(subtitle); s != "" {
		fmt.Fprintf(b, `{\pard\qc\i\fs28 %s\par}`+"\n", Escape(s))
	}
	b.WriteString(`{\pard\par}` + "\n")
}

func writeBody(b *strings.Builder, content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case headingRegex.MatchString(line):
			m := headingRegex.FindStringSubmatch(line)
			fmt.Fprintf(b, `{\pard\b\fs%d %s\par}`+"\n", headingSizes[len(m[1])], inline(strings.TrimSpace(m[2])))
		case bulletRegex.MatchString(line):
			m := bulletRegex.FindStringSubmatch(line)
			fmt.Fprintf(b, `{\pard\li720\fi-360\bullet\tab %s\par}`+"\n", inline(m[1]))
		case numberedRegex.MatchString(line):
			m := numberedRegex.FindStringSubmatch(line)
			fmt.Fprintf(b, `{\pard\li720\fi-360 %s.\tab %s\par}`+"\n", m[1], inline(m[2]))
		default:
			fmt.Fprintf(b, `{\pard\fi360 %s\par}`+"\n", inline(line))
		}
	}
}

// inline escapes text and turns **bold** and *italic* spans into RTF groups.
func inline(text string) string {
	out := Escape(text)
	out = boldRegex.ReplaceAllString(out, `{\b $1}`)
	out = italicRegex.ReplaceAllString(out, `{\i $1}`)
	return out
}

// Escape makes text safe inside an RTF group: backslashes and braces are
// escaped, tabs become \tab and non-ASCII runes become \uN? escapes.
func Escape(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '{':
			b.WriteString(`\{`)
		case r == '}':
			b.WriteString(`\}`)
		case r == '\t':
			b.WriteString(`\tab `)
		case r == '\n':
			b.WriteString(`\line `)
		case r < 0x20:
			// other control characters are dropped
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFFFF:
			fmt.Fprintf(&b, `\u%d?`, int16(r))
		default:
			// outside the BMP: write the UTF-16 surrogate pair
			r -= 0x10000
			fmt.Fprintf(&b, `\u%d?\u%d?`, int16(0xD800+(r>>10)), int16(0xDC00+(r&0x3FF)))
		}
	}
	return b.String()
}
