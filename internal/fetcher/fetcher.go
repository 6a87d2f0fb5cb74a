package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Kalwarein/born-to-blog/internal/feeds"
	"github.com/Kalwarein/born-to-blog/internal/logger"
	"github.com/Kalwarein/born-to-blog/internal/metrics"
	"github.com/Kalwarein/born-to-blog/internal/models"
	"github.com/Kalwarein/born-to-blog/internal/rss"
)

// Result — исход обработки одной ленты: либо статьи, либо ошибка.
// Ошибка одной ленты не влияет на остальные.
type Result struct {
	Source   feeds.Source
	Articles []models.Article
	Err      error
}

// Fetcher загружает и разбирает RSS-ленты.
type Fetcher struct {
	client *http.Client
}

// New создаёт Fetcher. timeout = 0 означает отсутствие дедлайна на запрос.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch загружает XML одной ленты по url. Не-2xx статус считается ошибкой.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; NewsBot/1.0)")
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchAll обходит все ленты параллельно и собирает результаты.
// Порядок результатов совпадает с порядком sources, чтобы правило
// «первое вхождение побеждает» при дедупликации было детерминированным.
func (f *Fetcher) FetchAll(ctx context.Context, sources []feeds.Source) []Result {
	results := make([]Result, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src feeds.Source) {
			defer wg.Done()
			results[i] = f.processFeed(ctx, src)
		}(i, src)
	}
	wg.Wait()

	return results
}

func (f *Fetcher) processFeed(ctx context.Context, src feeds.Source) Result {
	log := logger.Log.WithFields(map[string]interface{}{
		"source":   src.Name,
		"category": src.Category,
		"url":      src.URL,
	})
	log.Debug("Fetching RSS feed")

	start := time.Now()
	xml, err := f.Fetch(ctx, src.URL)
	metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FeedFetches.WithLabelValues(src.Name, "error").Inc()
		log.Errorf("Failed to fetch RSS: %v", err)
		return Result{Source: src, Err: err}
	}
	metrics.FeedFetches.WithLabelValues(src.Name, "ok").Inc()

	articles := rss.Parse(xml, src.Name, src.Category)
	metrics.ItemsParsed.Add(float64(len(articles)))
	log.WithField("items_count", len(articles)).Info("Parsed RSS feed")

	return Result{Source: src, Articles: articles}
}
