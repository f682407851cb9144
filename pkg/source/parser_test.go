package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Product Forum</title>
	<link>http://example.com</link>
	<description>Customer feedback</description>
	<item>
		<title>Dashboard loading slowly</title>
		<link>http://example.com/t/1</link>
		<description>Short description</description>
		<content:encoded><![CDATA[<p>The analytics dashboard takes <b>forever</b> to load.</p>]]></content:encoded>
		<guid>forum-1</guid>
	</item>
	<item>
		<title>Dark mode please</title>
		<link>http://example.com/t/2</link>
		<description>Would love to have a dark mode option!</description>
	</item>
	<item>
		<title>No link no guid</title>
		<description>Orphan &lt;i&gt;entry&lt;/i&gt; &amp; more</description>
	</item>
</channel>
</rss>`

const testAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Issues</title>
	<id>urn:issues</id>
	<updated>2024-01-01T00:00:00Z</updated>
	<entry>
		<title>Bug: Search not finding exact matches</title>
		<id>urn:issue:42</id>
		<link href="http://example.com/issues/42"/>
		<updated>2024-01-01T00:00:00Z</updated>
		<content type="html">When I search for "project-alpha" it does not find exact matches.</content>
	</entry>
</feed>`

func TestParser_ParseRSS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "feedboard-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testRSS))
	}))
	defer server.Close()

	entries, err := NewParser(5*time.Second, "feedboard-test").Parse(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "forum-1", entries[0].GUID)
	assert.Equal(t, "Dashboard loading slowly", entries[0].Title)
	assert.Equal(t, "The analytics dashboard takes forever to load.", entries[0].Content, "markup stripped")

	assert.Equal(t, "http://example.com/t/2", entries[1].GUID, "link used when guid is missing")
	assert.Equal(t, "Would love to have a dark mode option!", entries[1].Content, "description used when content is missing")

	assert.Equal(t, "Product Forum-No link no guid", entries[2].GUID)
	assert.Equal(t, "Orphan entry & more", entries[2].Content, "entities decoded after stripping")
}

func TestParser_ParseAtom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(testAtom))
	}))
	defer server.Close()

	entries, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "urn:issue:42", entries[0].GUID)
	assert.Equal(t, "http://example.com/issues/42", entries[0].Link)
	assert.Contains(t, entries[0].Content, `"project-alpha"`)
}

func TestParser_ParseErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.EqualError(t, err, "unexpected status code: 404")
	})

	t.Run("not a feed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("just text"))
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewParser(time.Second, "").Parse(context.Background(), "http://127.0.0.1:1/feed")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch feed")
	})
}
