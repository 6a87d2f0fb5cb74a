package rss

import (
	"regexp"
	"strings"
	"time"

	"github.com/Kalwarein/born-to-blog/internal/models"
)

// Парсер намеренно терпим к битому XML: реальные ленты не соответствуют
// схеме, поэтому поля извлекаются по отдельности, а отсутствующие —
// заменяются значениями по умолчанию, вместо отказа всего документа.
var (
	itemRe = regexp.MustCompile(`(?is)<item[^>]*>(.*?)</item>`)

	titleRe    = regexp.MustCompile(`(?is)<title>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</title>`)
	linkRe     = regexp.MustCompile(`(?is)<link>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</link>`)
	atomLinkRe = regexp.MustCompile(`(?i)<link[^>]*href=["']([^"']+)["'][^>]*/?>`)

	descRe    = regexp.MustCompile(`(?is)<description>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</description>`)
	contentRe = regexp.MustCompile(`(?is)<content:encoded>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</content:encoded>`)
	summaryRe = regexp.MustCompile(`(?is)<summary>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</summary>`)

	pubDateRe   = regexp.MustCompile(`(?is)<pubDate>(.*?)</pubDate>`)
	dcDateRe    = regexp.MustCompile(`(?is)<dc:date>(.*?)</dc:date>`)
	publishedRe = regexp.MustCompile(`(?is)<published>(.*?)</published>`)

	mediaContentRe = regexp.MustCompile(`(?i)<media:content[^>]*url=["']([^"']+)["']`)
	mediaThumbRe   = regexp.MustCompile(`(?i)<media:thumbnail[^>]*url=["']([^"']+)["']`)
	enclosureRe    = regexp.MustCompile(`(?is)<enclosure[^>]*>`)
	attrURLRe      = regexp.MustCompile(`(?i)url=["']([^"']+)["']`)
	attrTypeRe     = regexp.MustCompile(`(?i)type=["']([^"']+)["']`)
	imgRe          = regexp.MustCompile(`(?i)<img[^>]*src=["']([^"']+)["']`)

	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// descriptionLimit ограничивает длину описания после очистки.
const descriptionLimit = 2000

// dateLayouts — форматы дат, встречающиеся в реальных лентах.
// Пробуются по порядку, первый успешный выигрывает.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse извлекает статьи из сырого XML одной ленты. Элементы без заголовка
// или ссылки отбрасываются. Ошибок не возвращает: непригодный документ
// просто даёт пустой результат.
func Parse(xml, source, category string) []models.Article {
	var articles []models.Article

	for _, match := range itemRe.FindAllStringSubmatch(xml, -1) {
		itemXML := match[1]

		title := extractText(titleRe, itemXML)
		title = DecodeEntities(strings.TrimSpace(title))

		link := extractText(linkRe, itemXML)
		if link == "" {
			// Atom-вариант: url лежит в атрибуте href самозакрытого <link/>
			if m := atomLinkRe.FindStringSubmatch(itemXML); m != nil {
				link = m[1]
			}
		}
		link = strings.TrimSpace(link)

		if title == "" || link == "" {
			continue
		}

		description := extractFirst(itemXML, descRe, contentRe, summaryRe)
		description = StripHTML(description)
		description = DecodeEntities(description)
		description = truncate(description, descriptionLimit)

		articles = append(articles, models.Article{
			Title:       title,
			Link:        link,
			Description: description,
			PubDate:     parseDate(extractFirst(itemXML, pubDateRe, dcDateRe, publishedRe)),
			ImageURL:    extractImage(itemXML),
			Source:      source,
			Category:    category,
		})
	}

	return articles
}

// extractText возвращает первую группу первого совпадения или "".
func extractText(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractFirst пробует шаблоны по порядку приоритета.
func extractFirst(s string, res ...*regexp.Regexp) string {
	for _, re := range res {
		if v := extractText(re, s); v != "" {
			return v
		}
	}
	return ""
}

// parseDate перебирает известные форматы; непригодная дата заменяется
// текущим моментом — статья из-за неё не отбрасывается.
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
	}
	return time.Now()
}

// extractImage ищет картинку в порядке предпочтения: media:content,
// media:thumbnail, enclosure с type="image/...", затем inline <img>.
func extractImage(itemXML string) string {
	if m := mediaContentRe.FindStringSubmatch(itemXML); m != nil {
		return m[1]
	}
	if m := mediaThumbRe.FindStringSubmatch(itemXML); m != nil {
		return m[1]
	}
	for _, tag := range enclosureRe.FindAllString(itemXML, -1) {
		typ := attrTypeRe.FindStringSubmatch(tag)
		if typ == nil || !strings.Contains(strings.ToLower(typ[1]), "image") {
			continue
		}
		if m := attrURLRe.FindStringSubmatch(tag); m != nil {
			return m[1]
		}
	}
	if m := imgRe.FindStringSubmatch(itemXML); m != nil {
		return m[1]
	}
	return ""
}

// truncate обрезает строку до max символов, не разрывая UTF-8.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// StripHTML заменяет каждый тег одним пробелом, схлопывает последовательности
// пробельных символов и обрезает края.
func StripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
