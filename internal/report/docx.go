// Package report renders an LLM analysis as a styled Word document.
package report

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Calibri"
	fontSize  = 11
	titleSize = 18
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

type lineKind int

const (
	kindSkip lineKind = iota
	kindHeading
	kindBullet
	kindNumbered
	kindText
)

// block is one rendered paragraph of the analysis
type block struct {
	kind  lineKind
	text  string
	level int
}

// parse splits the markdown-ish model output into paragraphs
func parse(analysis string) []block {
	var blocks []block
	for _, line := range strings.Split(analysis, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || trimmed == "---":
			continue
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: kindHeading, text: m[2], level: len(m[1])})
		case reBullet.MatchString(trimmed):
			blocks = append(blocks, block{kind: kindBullet, text: reBullet.FindStringSubmatch(trimmed)[1]})
		case reNumbered.MatchString(trimmed):
			blocks = append(blocks, block{kind: kindNumbered, text: trimmed})
		default:
			blocks = append(blocks, block{kind: kindText, text: trimmed})
		}
	}
	return blocks
}

// WriteAnalysisDocx renders analysis under title and saves it to path.
func WriteAnalysisDocx(title, analysis, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)

	for _, b := range parse(analysis) {
		p := doc.AddParagraph("")
		switch b.kind {
		case kindHeading:
			addStyledRun(p, b.text, true, headingSize(b.level))
		case kindBullet:
			addRichText(p, "• "+b.text)
		default:
			addRichText(p, b.text)
		}
	}

	return doc.SaveTo(path)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans bold and strips other inline markup
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
