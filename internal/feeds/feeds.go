package feeds

import "strings"

// Source описывает одну настроенную RSS-ленту: адрес, название издания
// и категорию, которая наследуется всеми статьями из этой ленты.
type Source struct {
	URL      string
	Name     string
	Category string
}

// Sources — фиксированный список публичных RSS-лент крупных изданий.
// Бесплатные ленты, API-ключ не требуется. Изменение списка требует
// пересборки сервиса.
var Sources = []Source{
	{URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Name: "BBC News", Category: "world"},
	{URL: "https://feeds.bbci.co.uk/news/technology/rss.xml", Name: "BBC News", Category: "tech"},
	{URL: "https://feeds.bbci.co.uk/news/business/rss.xml", Name: "BBC News", Category: "business"},
	{URL: "https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml", Name: "BBC News", Category: "entertainment"},
	{URL: "https://feeds.bbci.co.uk/sport/rss.xml", Name: "BBC Sport", Category: "sports"},
	{URL: "https://feeds.bbci.co.uk/news/health/rss.xml", Name: "BBC News", Category: "health"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml", Name: "New York Times", Category: "world"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/Technology.xml", Name: "New York Times", Category: "tech"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/Business.xml", Name: "New York Times", Category: "business"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml", Name: "New York Times", Category: "politics"},
	{URL: "https://feeds.npr.org/1001/rss.xml", Name: "NPR", Category: "news"},
	{URL: "https://feeds.npr.org/1014/rss.xml", Name: "NPR", Category: "politics"},
	{URL: "https://feeds.npr.org/1019/rss.xml", Name: "NPR", Category: "tech"},
	{URL: "https://www.aljazeera.com/xml/rss/all.xml", Name: "Al Jazeera", Category: "world"},
	{URL: "https://www.theguardian.com/world/rss", Name: "The Guardian", Category: "world"},
	{URL: "https://www.theguardian.com/uk/technology/rss", Name: "The Guardian", Category: "tech"},
	{URL: "https://www.theguardian.com/uk/business/rss", Name: "The Guardian", Category: "business"},
	{URL: "https://www.theguardian.com/uk/sport/rss", Name: "The Guardian", Category: "sports"},
	{URL: "https://rss.cnn.com/rss/edition_world.rss", Name: "CNN", Category: "world"},
	{URL: "https://rss.cnn.com/rss/edition_technology.rss", Name: "CNN", Category: "tech"},
	{URL: "https://rss.cnn.com/rss/money_news_international.rss", Name: "CNN", Category: "business"},
	{URL: "https://www.cbsnews.com/latest/rss/world", Name: "CBS News", Category: "world"},
	{URL: "https://www.cbsnews.com/latest/rss/technology", Name: "CBS News", Category: "tech"},
	{URL: "https://abcnews.go.com/abcnews/internationalheadlines", Name: "ABC News", Category: "world"},
}

// categoryToPostType сопоставляет категорию ленты со значением post_type
// в таксономии приложения.
var categoryToPostType = map[string]string{
	"world":         "world",
	"tech":          "tech",
	"technology":    "tech",
	"business":      "business",
	"politics":      "politics",
	"sports":        "sports",
	"sport":         "sports",
	"entertainment": "entertainment",
	"health":        "health",
	"lifestyle":     "lifestyle",
	"news":          "news",
}

// MapCategory возвращает post_type для категории ленты.
// Неизвестная категория всегда даёт "news", ошибок не бывает.
func MapCategory(category string) string {
	if pt, ok := categoryToPostType[strings.ToLower(category)]; ok {
		return pt
	}
	return "news"
}
