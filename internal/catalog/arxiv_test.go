package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title type="html">ArXiv Query: search_query=all:attention</title>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <updated>2023-08-02T00:41:18Z</updated>
    <published>2017-06-12T17:57:34Z</published>
    <title>Attention Is All
 You Need</title>
    <summary>  The dominant sequence transduction models are based on complex
recurrent or convolutional neural networks.
</summary>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <link href="http://arxiv.org/abs/1706.03762v7" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v7" rel="related" type="application/pdf"/>
    <category term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <title>Second Paper</title>
    <summary>Another abstract.</summary>
    <author><name>Solo Author</name></author>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/query", r.URL.Path)
		assert.Equal(t, "all:attention", r.URL.Query().Get("search_query"))
		assert.Equal(t, "2", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewArxiv(srv.URL, srv.Client())
	papers, err := client.Search(context.Background(), "attention", 2)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	first := papers[0]
	assert.Equal(t, "Attention Is All You Need", first.Title)
	assert.Contains(t, first.Summary, "dominant sequence transduction models")
	assert.NotContains(t, first.Summary, "\n")
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, first.Authors)
	assert.Equal(t, []string{"cs.CL", "cs.LG"}, first.Categories)
	assert.Equal(t, "http://arxiv.org/pdf/1706.03762v7", first.PDF)
	assert.Equal(t, "2017-06-12T17:57:34Z", first.Published)

	second := papers[1]
	assert.Equal(t, "Second Paper", second.Title)
	assert.Empty(t, second.PDF)
}

func TestArxivSearchEmptyTopic(t *testing.T) {
	client := NewArxiv("", nil)
	_, err := client.Search(context.Background(), "   ", 5)
	assert.Error(t, err)
}

func TestArxivSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewArxiv(srv.URL, srv.Client())
	_, err := client.Search(context.Background(), "attention", 5)
	assert.Error(t, err)
}
