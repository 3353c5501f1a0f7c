package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"research-agent/internal/alerts"
	"research-agent/internal/app"
	"research-agent/internal/catalog"
	"research-agent/internal/config"
	"research-agent/internal/store"
)

func newTestDeps(t *testing.T, mockCatalog *catalog.MockClient, mockStore *store.MockStore, topics []string) app.Deps {
	t.Helper()
	al, err := alerts.NewStore(filepath.Join(t.TempDir(), "alerts.json"))
	require.NoError(t, err)
	for _, topic := range topics {
		require.NoError(t, al.AddTopic(topic))
	}
	return app.Deps{
		Config:  config.Config{CatalogMaxResults: 10},
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Catalog: mockCatalog,
		Store:   mockStore,
		Alerts:  al,
	}
}

func TestHandleScan(t *testing.T) {
	t.Run("saves matches for every subscribed topic", func(t *testing.T) {
		mockCatalog := new(catalog.MockClient)
		mockStore := new(store.MockStore)

		mockCatalog.On("Search", mock.Anything, "attention", 10).Return([]catalog.Paper{
			{Title: "Sparse Attention", PDF: "https://arxiv.org/pdf/1", Summary: "We propose sparse attention. It is faster."},
		}, nil).Once()
		mockCatalog.On("Search", mock.Anything, "diffusion", 10).Return([]catalog.Paper{
			{Title: "Fast Diffusion", PDF: "https://arxiv.org/pdf/2", Summary: "A faster sampler."},
		}, nil).Once()

		mockStore.On("SaveMatches", mock.Anything, mock.MatchedBy(func(matches []store.Match) bool {
			if len(matches) != 2 {
				return false
			}
			return matches[0].Topic == "attention" && matches[0].Title == "Sparse Attention" &&
				matches[0].URL == "https://arxiv.org/pdf/1" && matches[0].Summary != "" &&
				matches[1].Topic == "diffusion"
		})).Return(nil).Once()

		deps := newTestDeps(t, mockCatalog, mockStore, []string{"attention", "diffusion"})
		require.NoError(t, handleScan(context.Background(), deps))

		mockCatalog.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("skips failing topics and keeps the rest", func(t *testing.T) {
		mockCatalog := new(catalog.MockClient)
		mockStore := new(store.MockStore)

		mockCatalog.On("Search", mock.Anything, "attention", 10).Return(nil, errors.New("upstream down")).Once()
		mockCatalog.On("Search", mock.Anything, "diffusion", 10).Return([]catalog.Paper{
			{Title: "Fast Diffusion", Summary: "A faster sampler."},
		}, nil).Once()
		mockStore.On("SaveMatches", mock.Anything, mock.MatchedBy(func(matches []store.Match) bool {
			return len(matches) == 1 && matches[0].Topic == "diffusion"
		})).Return(nil).Once()

		deps := newTestDeps(t, mockCatalog, mockStore, []string{"attention", "diffusion"})
		require.NoError(t, handleScan(context.Background(), deps))

		mockCatalog.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("no topics means no catalog calls", func(t *testing.T) {
		mockCatalog := new(catalog.MockClient)
		mockStore := new(store.MockStore)

		deps := newTestDeps(t, mockCatalog, mockStore, nil)
		require.NoError(t, handleScan(context.Background(), deps))

		mockCatalog.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("store failure is returned for the queue to retry", func(t *testing.T) {
		mockCatalog := new(catalog.MockClient)
		mockStore := new(store.MockStore)

		mockCatalog.On("Search", mock.Anything, "attention", 10).Return([]catalog.Paper{
			{Title: "Sparse Attention", Summary: "We propose sparse attention."},
		}, nil).Once()
		mockStore.On("SaveMatches", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		deps := newTestDeps(t, mockCatalog, mockStore, []string{"attention"})
		require.Error(t, handleScan(context.Background(), deps))
	})
}
