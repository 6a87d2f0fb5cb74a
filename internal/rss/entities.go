package rss

import (
	"regexp"
	"strconv"
	"strings"
)

// namedEntities — фиксированная таблица сущностей, встречающихся в лентах.
// Ключи в нижнем регистре; подстановка не зависит от регистра.
var namedEntities = map[string]string{
	"&amp;":   "&",
	"&lt;":    "<",
	"&gt;":    ">",
	"&quot;":  `"`,
	"&#39;":   "'",
	"&apos;":  "'",
	"&nbsp;":  " ",
	"&#x27;":  "'",
	"&#x2f;":  "/",
	"&#8217;": "'",
	"&#8216;": "'",
	"&#8220;": `"`,
	"&#8221;": `"`,
	"&#8211;": "–",
	"&#8212;": "—",
}

var (
	namedEntityRe = regexp.MustCompile(`(?i)&(?:amp|lt|gt|quot|apos|nbsp|#39|#x27|#x2f|#8217|#8216|#8220|#8221|#8211|#8212);`)
	decEntityRe   = regexp.MustCompile(`&#(\d+);`)
	hexEntityRe   = regexp.MustCompile(`(?i)&#x([0-9a-f]+);`)
)

// DecodeEntities раскодирует HTML-сущности. Сначала применяется таблица
// именованных сущностей, затем общие числовые формы &#NNN; и &#xHH;.
// Порядок важен: именованная сущность не должна попасть под числовой шаблон.
func DecodeEntities(text string) string {
	decoded := namedEntityRe.ReplaceAllStringFunc(text, func(e string) string {
		if r, ok := namedEntities[strings.ToLower(e)]; ok {
			return r
		}
		return e
	})

	decoded = decEntityRe.ReplaceAllStringFunc(decoded, func(e string) string {
		m := decEntityRe.FindStringSubmatch(e)
		n, err := strconv.ParseInt(m[1], 10, 32)
		if err != nil {
			return e
		}
		return string(rune(n))
	})

	decoded = hexEntityRe.ReplaceAllStringFunc(decoded, func(e string) string {
		m := hexEntityRe.FindStringSubmatch(e)
		n, err := strconv.ParseInt(m[1], 16, 32)
		if err != nil {
			return e
		}
		return string(rune(n))
	})

	return decoded
}
