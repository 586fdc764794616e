package extract

import (
	"strings"

	"golang.org/x/net/html"
	"veridict/internal/model"
)

// abbreviations lists dotted tokens that do not end a sentence
var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"st": true, "vs": true, "jr": true, "sr": true, "inc": true,
	"ltd": true,
}

// endsWithAbbreviation reports whether text ending in a period stops at
// a title abbreviation or a dotted initial, as in "Dr. Smith" or the
// "U.S." in "U.S. economy"
func endsWithAbbreviation(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if i := strings.LastIndexAny(s, " \t"); i >= 0 {
		s = s[i+1:]
	}
	if j := strings.LastIndexByte(s, '.'); j >= 0 {
		s = s[j+1:]
	}
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return true
	}
	return abbreviations[strings.ToLower(s)]
}

// SplitSentences splits article text into ordered, indexed sentences
func SplitSentences(text string) []model.Sentence {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []model.Sentence
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, model.Sentence{Index: len(sentences), Text: s})
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting mid-token, and keep
			// abbreviations attached to what follows them
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				if r == '.' && endsWithAbbreviation(current.String()) {
					continue
				}
				flush()
			}
		}
	}
	flush()

	return sentences
}

// VisibleText extracts readable text from HTML, skipping scripts/styles
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

// LooksLikeHTML reports whether content should go through VisibleText
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(content)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<body") || strings.Contains(head, "<!doctype")
}
