// Package richtext post-processes the HTML produced by the admin rich-text
// editor: it strips active content, extracts plain text for excerpts and
// finds the lead image.
package richtext

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mcarbmont89/full-congreso-sub000/internal/utils/text"
)

// DefaultExcerptLength is the excerpt size in runes used for news cards.
const DefaultExcerptLength = 200

// embedHosts lists iframe sources kept by Sanitize (video embeds pasted by editors).
var embedHosts = map[string]bool{
	"www.youtube.com":          true,
	"youtube.com":              true,
	"www.youtube-nocookie.com": true,
	"player.vimeo.com":         true,
	"www.facebook.com":         true,
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Sanitize removes script/style/object elements, on* event attributes,
// javascript: URLs and iframes pointing outside the embed allowlist.
func Sanitize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, object, embed, noscript, base, meta, link").Remove()

	doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		u, err := url.Parse(src)
		if err != nil || u.Scheme != "https" || !embedHosts[u.Host] {
			s.Remove()
		}
	})

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		var drop []string
		for _, attr := range s.Get(0).Attr {
			key := strings.ToLower(attr.Key)
			switch {
			case strings.HasPrefix(key, "on"):
				drop = append(drop, attr.Key)
			case key == "href" || key == "src" || key == "action" || key == "formaction":
				if isScriptURL(attr.Val) {
					drop = append(drop, attr.Key)
				}
			}
		}
		for _, key := range drop {
			s.RemoveAttr(key)
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func isScriptURL(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, v)
	return strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "vbscript:") ||
		(strings.HasPrefix(v, "data:") && !strings.HasPrefix(v, "data:image/"))
}

// PlainText returns the visible text of html with whitespace collapsed.
// Input that is already plain text is returned normalized.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := parse(html)
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script, style").Remove()
	// Block elements are glued together by Text(); pad them first.
	doc.Find("p, br, div, li, h1, h2, h3, h4, h5, h6, blockquote, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns the first max runes of the visible text of html.
func Excerpt(html string, max int) string {
	return text.Truncate(PlainText(html), max)
}

// FirstImage returns the src of the first <img> in html, or "".
func FirstImage(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := parse(html)
	if err != nil {
		return ""
	}
	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("src")
		v = strings.TrimSpace(v)
		if v == "" || isScriptURL(v) || strings.HasPrefix(v, "data:") {
			return true
		}
		src = v
		return false
	})
	return src
}
