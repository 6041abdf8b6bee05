package edgar

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText reduces a filing HTML document to plain text, one block
// element per paragraph. Script, style, and page chrome are dropped.
// Non-HTML input passes through unchanged.
func ExtractText(raw []byte) (string, error) {
	if !looksLikeHTML(raw) {
		return string(raw), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse filing html: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer").Remove()

	var blocks []string
	doc.Find("p, h1, h2, h3, h4, h5, h6, li, td, div").Each(func(_ int, s *goquery.Selection) {
		// Only leaf-ish blocks: skip containers whose text would repeat
		// their children's.
		if s.Children().Filter("p, div, table, ul, ol").Length() > 0 {
			return
		}
		text := normalizeSpace(s.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return normalizeSpace(doc.Text()), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func looksLikeHTML(raw []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(raw))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<!doctype html"))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
