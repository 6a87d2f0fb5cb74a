package models

import "time"

// Article представляет одну нормализованную статью, извлечённую из RSS-ленты.
// Поля Source и Category наследуются от настроенной ленты.
type Article struct {
	Title       string
	Link        string
	Description string
	PubDate     time.Time
	ImageURL    string
	Source      string
	Category    string
}

// Post представляет строку внешней статьи в таблице posts.
// Значение ExternalURL уникально и служит ключом дедупликации между запусками.
type Post struct {
	Title       string
	Subtitle    string
	Content     string
	Excerpt     string
	ImageURL    string
	ExternalURL string
	SourceName  string
	IsExternal  bool
	PostType    string
	Status      string
	ReadingTime int
	CreatedAt   time.Time
}

// RunDetails — сводка одного запуска конвейера, записывается в журнал
// одной строкой с action = "rss_news_fetch".
type RunDetails struct {
	Timestamp   time.Time `json:"timestamp"`
	TotalFeeds  int       `json:"total_feeds"`
	TotalItems  int       `json:"total_items"`
	UniqueItems int       `json:"unique_items"`
	Inserted    int       `json:"inserted"`
	Skipped     int       `json:"skipped"`
	Errors      int       `json:"errors"`
}
