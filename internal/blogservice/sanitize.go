package blogservice

import "regexp"

var (
	scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)
	iframeTagPattern = regexp.MustCompile(`(?is)<\s*iframe[^>]*>(.*?)<\s*/\s*iframe\s*>`)
)

func sanitizeMarkdown(markdown string) string {
	markdown = scriptTagPattern.ReplaceAllString(markdown, "")
	return iframeTagPattern.ReplaceAllString(markdown, "")
}

func sanitizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeMarkdown(item))
	}
	return out
}
