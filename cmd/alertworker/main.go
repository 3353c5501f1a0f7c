package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"research-agent/internal/app"
	"research-agent/internal/httputil"
	"research-agent/internal/queue"
	"research-agent/internal/store"
	"research-agent/internal/synthesis"
)

// matchSummarySentences bounds the offline digest attached to each match.
const matchSummarySentences = 2

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	if deps.Queue == nil {
		deps.Log.Error("alert worker requires QUEUE_PROVIDER=nats")
		os.Exit(1)
	}
	deps.Log.Info("alert worker starting")

	g, ctx := errgroup.WithContext(context.Background())

	// Run queue worker
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeAlertScan, func(ctx context.Context, task queue.Task) error {
			return handleScan(ctx, deps)
		})
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(deps.Log, deps.Config.Port, "alertworker")
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("alert worker stopped", "err", err)
	}
}

// handleScan searches the catalog for every subscribed topic and archives the
// results. A failed topic is logged and skipped so one bad query never loses
// the rest of the scan.
func handleScan(ctx context.Context, deps app.Deps) error {
	topics := deps.Alerts.Topics()
	if len(topics) == 0 {
		deps.Log.Info("no subscribed topics, nothing to scan")
		return nil
	}

	var matches []store.Match
	for _, topic := range topics {
		papers, err := deps.Catalog.Search(ctx, topic, deps.Config.CatalogMaxResults)
		if err != nil {
			deps.Log.Warn("topic search failed", "topic", topic, "err", err)
			continue
		}
		for _, paper := range papers {
			matches = append(matches, store.Match{
				Topic:   topic,
				Title:   paper.Title,
				URL:     paper.PDF,
				Summary: synthesis.Summarize(paper.Summary, matchSummarySentences, false).Summary,
				FoundAt: time.Now().UTC(),
			})
		}
		deps.Log.Info("topic scanned", "topic", topic, "papers", len(papers))
	}

	if len(matches) == 0 {
		return nil
	}
	return deps.Store.SaveMatches(ctx, matches)
}
