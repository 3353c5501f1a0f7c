package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultArxivBaseURL = "https://export.arxiv.org"

// ArxivClient queries the arXiv Atom API.
type ArxivClient struct {
	baseURL string
	client  *http.Client
}

// NewArxiv wires an HTTP client; baseURL defaults to the public export host.
func NewArxiv(baseURL string, client *http.Client) *ArxivClient {
	if baseURL == "" {
		baseURL = defaultArxivBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ArxivClient{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

// atomFeed mirrors the subset of the arXiv Atom schema we consume.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Updated   string       `xml:"updated"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
	Category  []atomCat    `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type atomCat struct {
	Term string `xml:"term,attr"`
}

// Search queries arXiv for papers matching the topic, newest first.
func (c *ArxivClient) Search(ctx context.Context, topic string, maxResults int) ([]Paper, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	q := url.Values{}
	q.Set("search_query", "all:"+topic)
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/query?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "research-agent/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %s", resp.Status)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, entryToPaper(entry))
	}
	return papers, nil
}

func entryToPaper(entry atomEntry) Paper {
	p := Paper{
		Title:     collapseSpace(entry.Title),
		Summary:   collapseSpace(entry.Summary),
		Published: strings.TrimSpace(entry.Published),
		Updated:   strings.TrimSpace(entry.Updated),
	}
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	for _, c := range entry.Category {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	for _, l := range entry.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			p.PDF = l.Href
			break
		}
	}
	return p
}

// collapseSpace flattens the newline-wrapped text arXiv embeds in titles and
// abstracts.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
