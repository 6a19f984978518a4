package pipeline

import (
	"strings"

	"golang.org/x/net/html"
)

// StopTag names an HTML tag, optionally qualified by one exact attribute
// match, that terminates summary accumulation.
type StopTag struct {
	Tag  string
	Attr *StopAttr
}

// StopAttr is an exact attribute condition on a stop tag.
type StopAttr struct {
	Key string
	Val string
}

// DefaultStopTags stops the summary at the first code cell's input or
// output, or at a second-level header.
func DefaultStopTags() []StopTag {
	return []StopTag{
		{Tag: "div", Attr: &StopAttr{Key: "class", Val: "input"}},
		{Tag: "div", Attr: &StopAttr{Key: "class", Val: "output"}},
		{Tag: "h2", Attr: &StopAttr{Key: "id", Val: "Header-2"}},
	}
}

// ExtractSummary streams the cleaned article HTML through a tag-aware scan
// and returns a word-count-bounded excerpt. The scan accumulates markup
// into a buffer; hitting a stop tag while under maxWords freezes the
// summary at the buffer so far, and crossing maxWords at a closing tag
// freezes it there, keeping the excerpt's HTML well formed. If neither
// condition triggers, ok is false and no summary should be set.
func ExtractSummary(content string, maxWords int, stopTags []StopTag) (summary string, ok bool) {
	tokenizer := html.NewTokenizer(strings.NewReader("<body>" + content + "</body>"))

	var buffer strings.Builder
	wordCount := 0

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}

		token := tokenizer.Token()
		if token.Data == "body" && (tokenType == html.StartTagToken || tokenType == html.EndTagToken) {
			continue
		}

		switch tokenType {
		case html.StartTagToken:
			if wordCount < maxWords && matchesStopTag(token, stopTags) {
				summary = buffer.String()
				ok = true
				// Pin the count so later tags have no further effect.
				wordCount = maxWords
			}
			buffer.WriteString(token.String())

		case html.EndTagToken:
			buffer.WriteString(token.String())
			if wordCount < maxWords {
				wordCount = len(strings.Fields(StripTags(buffer.String())))
				if wordCount >= maxWords {
					summary = buffer.String()
					ok = true
				}
			}

		default:
			buffer.WriteString(token.String())
		}
	}

	return summary, ok
}

// matchesStopTag reports whether the token matches any stop tag. An
// attribute condition requires an exact key and value match.
func matchesStopTag(token html.Token, stopTags []StopTag) bool {
	for _, stop := range stopTags {
		if stop.Tag != token.Data {
			continue
		}
		if stop.Attr == nil {
			return true
		}
		for _, attr := range token.Attr {
			if attr.Key == stop.Attr.Key && attr.Val == stop.Attr.Val {
				return true
			}
		}
	}
	return false
}

// StripTags removes markup from HTML, keeping only text content. Used for
// word counting during summary extraction.
func StripTags(content string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(content))

	var text strings.Builder
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			text.Write(tokenizer.Text())
		}
	}
	return text.String()
}
