package rss_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kalwarein/born-to-blog/internal/rss"
)

func TestParse_ValidItem(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
	<rss version="2.0">
		<channel>
			<title>Test Feed</title>
			<item>
				<title>Test Title</title>
				<description>Test Description</description>
				<pubDate>Wed, 03 May 2023 15:04:05 +0000</pubDate>
				<link>http://example.com/test</link>
			</item>
		</channel>
	</rss>`

	articles := rss.Parse(xml, "Test Source", "world")
	require.Len(t, articles, 1)

	a := articles[0]
	require.Equal(t, "Test Title", a.Title)
	require.Equal(t, "http://example.com/test", a.Link)
	require.Equal(t, "Test Description", a.Description)
	require.Equal(t, "Test Source", a.Source)
	require.Equal(t, "world", a.Category)

	expected := time.Date(2023, 5, 3, 15, 4, 5, 0, time.UTC)
	require.True(t, a.PubDate.Equal(expected), "got %v", a.PubDate)
}

func TestParse_CDATA(t *testing.T) {
	xml := `<item>
		<title><![CDATA[Заголовок &amp; ещё]]></title>
		<link><![CDATA[http://example.com/1]]></link>
		<description><![CDATA[<p>Первый абзац</p><p>второй</p>]]></description>
	</item>`

	articles := rss.Parse(xml, "s", "news")
	require.Len(t, articles, 1)
	require.Equal(t, "Заголовок & ещё", articles[0].Title)
	require.Equal(t, "http://example.com/1", articles[0].Link)
	require.Equal(t, "Первый абзац второй", articles[0].Description)
}

func TestParse_DropsItemsWithoutTitleOrLink(t *testing.T) {
	testCases := []struct {
		name string
		xml  string
	}{
		{
			name: "no title",
			xml:  `<item><link>http://example.com/1</link></item>`,
		},
		{
			name: "no link",
			xml:  `<item><title>Only Title</title></item>`,
		},
		{
			name: "empty title",
			xml:  `<item><title>  </title><link>http://example.com/1</link></item>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Empty(t, rss.Parse(tc.xml, "s", "news"))
		})
	}
}

func TestParse_AtomLinkHref(t *testing.T) {
	xml := `<item>
		<title>Atom Entry</title>
		<link rel="alternate" href="http://example.com/atom"/>
	</item>`

	articles := rss.Parse(xml, "s", "news")
	require.Len(t, articles, 1)
	require.Equal(t, "http://example.com/atom", articles[0].Link)
}

func TestParse_DescriptionPriority(t *testing.T) {
	xml := `<item>
		<title>T</title>
		<link>http://example.com/1</link>
		<summary>from summary</summary>
		<content:encoded>from content</content:encoded>
		<description>from description</description>
	</item>`

	articles := rss.Parse(xml, "s", "news")
	require.Len(t, articles, 1)
	require.Equal(t, "from description", articles[0].Description)

	// Без <description> приоритет переходит к <content:encoded>
	xml = strings.Replace(xml, "<description>from description</description>", "", 1)
	articles = rss.Parse(xml, "s", "news")
	require.Equal(t, "from content", articles[0].Description)
}

func TestParse_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("a", 3000)
	xml := `<item><title>T</title><link>http://x/1</link><description>` + long + `</description></item>`

	articles := rss.Parse(xml, "s", "news")
	require.Len(t, articles, 1)
	require.Len(t, articles[0].Description, 2000)
}

func TestParse_BadDateFallsBackToNow(t *testing.T) {
	xml := `<item>
		<title>T</title>
		<link>http://example.com/1</link>
		<pubDate>not a date at all</pubDate>
	</item>`

	before := time.Now()
	articles := rss.Parse(xml, "s", "news")
	after := time.Now()

	require.Len(t, articles, 1)
	require.False(t, articles[0].PubDate.Before(before))
	require.False(t, articles[0].PubDate.After(after))
}

func TestParse_DateOnlyLayout(t *testing.T) {
	xml := `<item><title>T</title><link>http://x/1</link><pubDate>2024-01-02</pubDate></item>`

	articles := rss.Parse(xml, "s", "news")
	require.Len(t, articles, 1)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), articles[0].PubDate)
}

func TestParse_ImagePreferenceOrder(t *testing.T) {
	testCases := []struct {
		name     string
		itemBody string
		expected string
	}{
		{
			name: "media:content wins over everything",
			itemBody: `<media:content url="http://img/content.jpg"/>
				<media:thumbnail url="http://img/thumb.jpg"/>
				<enclosure url="http://img/enc.jpg" type="image/jpeg"/>
				<description>&lt;img src="http://img/inline.jpg"&gt;</description>`,
			expected: "http://img/content.jpg",
		},
		{
			name: "thumbnail wins over inline img",
			itemBody: `<media:thumbnail url="http://img/thumb.jpg"/>
				<description><![CDATA[<img src="http://img/inline.jpg">]]></description>`,
			expected: "http://img/thumb.jpg",
		},
		{
			name:     "enclosure needs image type",
			itemBody: `<enclosure url="http://files/audio.mp3" type="audio/mpeg"/><enclosure url="http://img/enc.png" type="image/png"/>`,
			expected: "http://img/enc.png",
		},
		{
			name:     "inline img as last resort",
			itemBody: `<description><![CDATA[text <img src="http://img/inline.jpg"> more]]></description>`,
			expected: "http://img/inline.jpg",
		},
		{
			name:     "no image at all",
			itemBody: `<description>plain text</description>`,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			xml := `<item><title>T</title><link>http://x/1</link>` + tc.itemBody + `</item>`
			articles := rss.Parse(xml, "s", "news")
			require.Len(t, articles, 1)
			require.Equal(t, tc.expected, articles[0].ImageURL)
		})
	}
}

func TestParse_MalformedTailTruncates(t *testing.T) {
	xml := `<item><title>First</title><link>http://x/1</link></item>
	<item><title>Broken</title><link>http://x/2</link>`

	articles := rss.Parse(xml, "s", "news")
	require.Len(t, articles, 1)
	require.Equal(t, "First", articles[0].Title)
}

func TestStripHTML(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"<p>hello <b>world</b></p>", "hello world"},
		{"no tags here", "no tags here"},
		{"  lots   of\n\twhitespace  ", "lots of whitespace"},
		{"<div><span>nested</span></div>", "nested"},
	}

	for _, tc := range testCases {
		got := rss.StripHTML(tc.in)
		require.Equal(t, tc.expected, got)
		require.NotContains(t, got, "<")
		require.NotContains(t, got, ">")
		require.NotContains(t, got, "  ")
	}
}

func TestDecodeEntities(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"mixed named and numeric", "Tom &amp; Jerry&#8217;s &lt;show&gt;", "Tom & Jerry's <show>"},
		{"quotes", "&quot;quoted&quot; and &apos;single&apos;", `"quoted" and 'single'`},
		{"nbsp", "a&nbsp;b", "a b"},
		{"decimal", "&#169; 2024", "© 2024"},
		{"hex", "&#xE9;tude", "étude"},
		{"hex uppercase", "&#X2014;", "—"},
		{"case insensitive named", "&AMP;&Lt;", "&<"},
		{"untouched plain text", "nothing here", "nothing here"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, rss.DecodeEntities(tc.in))
		})
	}
}
