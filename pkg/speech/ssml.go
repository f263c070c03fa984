package speech

import (
	"fmt"
	"regexp"
	"strings"
)

// Only pause, emphasis and prosody markup survive sanitization. Anything
// else the model emits gets stripped before the text reaches the
// synthesizer, and raw angle brackets in prose are escaped.
var (
	allowedTagPattern = regexp.MustCompile(`(?s)<(/?)(break|emphasis|prosody)((?:\s[^<>]*)?)(/?)>`)
	anyTagPattern     = regexp.MustCompile(`(?s)</?[a-zA-Z][^<>]*>`)
	speakOpenPattern  = regexp.MustCompile(`(?s)^\s*<speak[^>]*>`)
	speakClosePattern = regexp.MustCompile(`(?s)</speak>\s*$`)
)

const (
	tagPlaceholderOpen  = "\x00ssml:"
	tagPlaceholderClose = "\x00"
)

// SanitizeSSML normalizes model-produced speech markup into a document
// the synthesizer will accept: exactly one <speak> wrapper, only the
// allowed inline tags, and all other angle brackets escaped.
func SanitizeSSML(raw string) string {
	body := speakOpenPattern.ReplaceAllString(raw, "")
	body = speakClosePattern.ReplaceAllString(body, "")

	// Stash allowed tags so escaping cannot touch them.
	var stash []string
	body = allowedTagPattern.ReplaceAllStringFunc(body, func(tag string) string {
		stash = append(stash, tag)
		return fmt.Sprintf("%s%d%s", tagPlaceholderOpen, len(stash)-1, tagPlaceholderClose)
	})

	body = anyTagPattern.ReplaceAllString(body, "")
	body = escapeText(body)

	for i, tag := range stash {
		placeholder := fmt.Sprintf("%s%d%s", tagPlaceholderOpen, i, tagPlaceholderClose)
		body = strings.Replace(body, placeholder, tag, 1)
	}

	return "<speak>" + strings.TrimSpace(body) + "</speak>"
}

// StripSSML reduces speech markup to plain text, for synthesizers that
// take prose rather than SSML and for transcripts shown to the user.
func StripSSML(raw string) string {
	text := anyTagPattern.ReplaceAllString(raw, " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	return strings.Join(strings.Fields(text), " ")
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
