package ingest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Kalwarein/born-to-blog/internal/db"
	"github.com/Kalwarein/born-to-blog/internal/feeds"
	"github.com/Kalwarein/born-to-blog/internal/fetcher"
	"github.com/Kalwarein/born-to-blog/internal/logger"
	"github.com/Kalwarein/born-to-blog/internal/metrics"
	"github.com/Kalwarein/born-to-blog/internal/models"
)

const (
	// defaultLimit ограничивает число статей, обрабатываемых за один запуск.
	defaultLimit = 100

	titleLimit    = 500
	subtitleLimit = 200
	excerptLimit  = 150

	// wordsPerMinute — скорость чтения для расчёта reading_time.
	wordsPerMinute = 200

	contentTrailer = "\n\n---\n\nFor the complete article, visit the original source."
)

// Store — порт хранилища, который нужен конвейеру. Реализуется *db.Database.
type Store interface {
	PostExists(ctx context.Context, externalURL string) (bool, error)
	InsertPost(ctx context.Context, post models.Post) error
	InsertRunLog(ctx context.Context, details models.RunDetails) error
}

// Summary — итог одного запуска, возвращается вызывающему и пишется в журнал.
type Summary struct {
	FeedsProcessed int `json:"feeds_processed"`
	TotalItems     int `json:"total_items"`
	UniqueItems    int `json:"unique_items"`
	Inserted       int `json:"inserted"`
	Skipped        int `json:"skipped"`
	Errors         int `json:"errors"`
}

// Pipeline связывает загрузку лент с записью статей в хранилище.
type Pipeline struct {
	store   Store
	fetcher *fetcher.Fetcher
	sources []feeds.Source
	limit   int
	now     func() time.Time
}

// New создаёт Pipeline с лимитом статей по умолчанию.
func New(store Store, f *fetcher.Fetcher, sources []feeds.Source) *Pipeline {
	return &Pipeline{
		store:   store,
		fetcher: f,
		sources: sources,
		limit:   defaultLimit,
		now:     time.Now,
	}
}

// SetLimit меняет максимум статей на запуск. Вызывается до Run.
func (p *Pipeline) SetLimit(limit int) {
	p.limit = limit
}

// Run выполняет один запуск: параллельная загрузка всех лент, слияние,
// дедупликация по ссылке, сортировка по дате, ограничение и последовательная
// запись. Ошибки отдельных лент и статей поглощаются счётчиками; ошибку
// возвращает только запись итоговой строки журнала.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	log := logger.Log.WithField("service", "ingest")
	log.Info("Starting RSS feed fetch")

	results := p.fetcher.FetchAll(ctx, p.sources)

	var all []models.Article
	for _, res := range results {
		all = append(all, res.Articles...)
	}
	log.WithField("items_count", len(all)).Info("Merged items from all feeds")

	unique := dedupe(all)

	summary := Summary{
		FeedsProcessed: len(p.sources),
		TotalItems:     len(all),
		UniqueItems:    len(unique),
	}

	// Сортировка устойчивая: при равных датах сохраняется порядок обхода лент.
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].PubDate.After(unique[j].PubDate)
	})
	if len(unique) > p.limit {
		unique = unique[:p.limit]
	}

	// Запись строго последовательная: проверка существования и вставка
	// не должны гоняться друг с другом внутри одного запуска.
	for _, article := range unique {
		switch p.writeArticle(ctx, article) {
		case writeInserted:
			summary.Inserted++
			metrics.PostsIngested.WithLabelValues("inserted").Inc()
		case writeSkipped:
			summary.Skipped++
			metrics.PostsIngested.WithLabelValues("skipped").Inc()
		case writeError:
			summary.Errors++
			metrics.PostsIngested.WithLabelValues("error").Inc()
		}
	}

	log.WithFields(map[string]interface{}{
		"inserted": summary.Inserted,
		"skipped":  summary.Skipped,
		"errors":   summary.Errors,
	}).Info("Completed RSS feed fetch")

	if err := p.store.InsertRunLog(ctx, models.RunDetails{
		Timestamp:   p.now(),
		TotalFeeds:  summary.FeedsProcessed,
		TotalItems:  summary.TotalItems,
		UniqueItems: summary.UniqueItems,
		Inserted:    summary.Inserted,
		Skipped:     summary.Skipped,
		Errors:      summary.Errors,
	}); err != nil {
		return summary, err
	}

	metrics.Runs.Inc()
	return summary, nil
}

type writeResult int

const (
	writeInserted writeResult = iota
	writeSkipped
	writeError
)

func (p *Pipeline) writeArticle(ctx context.Context, article models.Article) writeResult {
	log := logger.Log.WithField("link", article.Link)

	// Ошибка проверки не фатальна: вставка всё равно упрётся в
	// уникальное ограничение, если запись уже есть.
	exists, err := p.store.PostExists(ctx, article.Link)
	if err != nil {
		log.Warnf("Existence check failed: %v", err)
	}
	if exists {
		return writeSkipped
	}

	err = p.store.InsertPost(ctx, buildPost(article))
	if errors.Is(err, db.ErrDuplicate) {
		// Гонка с параллельным запуском: дубликат — это skip, не ошибка.
		return writeSkipped
	}
	if err != nil {
		log.Errorf("Failed to insert post: %v", err)
		return writeError
	}
	return writeInserted
}

// buildPost превращает статью в строку таблицы posts.
func buildPost(article models.Article) models.Post {
	return models.Post{
		Title:       truncate(article.Title, titleLimit),
		Subtitle:    truncate(article.Description, subtitleLimit),
		Content:     article.Description + contentTrailer,
		Excerpt:     truncate(article.Description, excerptLimit),
		ImageURL:    article.ImageURL,
		ExternalURL: article.Link,
		SourceName:  article.Source,
		IsExternal:  true,
		PostType:    feeds.MapCategory(article.Category),
		Status:      "published",
		ReadingTime: readingTime(article.Description),
		CreatedAt:   article.PubDate,
	}
}

// dedupe оставляет первое вхождение каждой ссылки в порядке обхода лент.
func dedupe(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.Link]; ok {
			continue
		}
		seen[a.Link] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

// readingTime оценивает время чтения по числу слов, минимум одна минута.
func readingTime(description string) int {
	words := len(strings.Fields(description))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
