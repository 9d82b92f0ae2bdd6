package scrape

import (
	"io"

	"github.com/PuerkitoBio/goquery"
)

// ParsePostMeta extrai legenda e imagem das meta tags og: de uma página
// pública de post.
func ParsePostMeta(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}

	caption, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	imageURL, _ := doc.Find(`meta[property="og:image"]`).Attr("content")

	return caption, imageURL, nil
}
