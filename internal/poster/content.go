package poster

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripTags returns the text content of an HTML fragment.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// TelegramCaption renders the HTML caption attached to the first photo of the media group.
func TelegramCaption(look *LookSnapshot) string {
	name := fmt.Sprintf("<strong><em>%s</em></strong>", look.Name)

	categories := make([]string, 0, len(look.Categories))
	for _, category := range look.Categories {
		lines := make([]string, 0, len(category.Clothes))
		for _, cloth := range category.Clothes {
			lines = append(lines, fmt.Sprintf(`<a href="%s">   -%s</a>`, cloth.ImageURL, cloth.Name))
		}
		categories = append(categories, fmt.Sprintf("<b><i>%s:</i></b>\n%s", category.Name, strings.Join(lines, "\n")))
	}

	description := html.EscapeString(StripTags(look.Description))
	return fmt.Sprintf("%s\n\n%s\n\n%s", name, strings.Join(categories, "\n\n"), description)
}

// InstagramCaption is the plain text caption: name, blank line, description.
func InstagramCaption(look *LookSnapshot) string {
	return fmt.Sprintf("%s\n\n%s", look.Name, StripTags(look.Description))
}
