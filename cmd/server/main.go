package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"research-agent/internal/alerts"
	"research-agent/internal/app"
	"research-agent/internal/cache"
	"research-agent/internal/httputil"
	"research-agent/internal/provider"
	"research-agent/internal/queue"
	"research-agent/internal/store"
	"research-agent/internal/synthesis"
)

type summarizeRequest struct {
	Text     string `json:"text" validate:"required"`
	Mode     string `json:"mode" validate:"omitempty,oneof=default eli5"`
	Provider string `json:"provider" validate:"omitempty,oneof=offline openai groq anthropic gemini"`
	Source   string `json:"source" validate:"omitempty,max=500"`
}

type chatRequest struct {
	Context  string             `json:"context" validate:"required"`
	Question string             `json:"question" validate:"required,min=1,max=2000"`
	Mode     string             `json:"mode" validate:"omitempty,oneof=default eli5"`
	Provider string             `json:"provider" validate:"omitempty,oneof=offline openai groq anthropic gemini"`
	History  []provider.Message `json:"history" validate:"omitempty,max=50,dive"`
}

type topicRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=200"`
}

type authorRequest struct {
	Author string `json:"author" validate:"required,min=2,max=200"`
}

type readingListRequest struct {
	Title string `json:"title" validate:"required,min=1,max=500"`
	URL   string `json:"url" validate:"omitempty,url"`
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Get("/api/search", searchHandler(deps))
	r.Post("/api/summarize", summarizeHandler(deps))
	r.Post("/api/summarize/file", summarizeFileHandler(deps))
	r.Post("/api/chat", chatHandler(deps))
	r.Get("/api/library", libraryHandler(deps))
	r.Get("/api/alerts", alertsHandler(deps))
	r.Post("/api/alerts/topics", addTopicHandler(deps))
	r.Post("/api/alerts/authors", addAuthorHandler(deps))
	r.Post("/api/alerts/scan", scanHandler(deps))
	r.Get("/api/alerts/matches", matchesHandler(deps))
	r.Get("/api/reading-list", readingListHandler(deps))
	r.Post("/api/reading-list", saveReadingHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func searchHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := strings.TrimSpace(r.URL.Query().Get("topic"))
		if topic == "" {
			httputil.Fail(deps.Log, w, "topic is required", nil, http.StatusBadRequest)
			return
		}
		max := deps.Config.CatalogMaxResults
		if raw := r.URL.Query().Get("max_results"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				httputil.Fail(deps.Log, w, "max_results must be between 1 and 100", err, http.StatusBadRequest)
				return
			}
			max = n
		}

		papers, err := deps.Catalog.Search(r.Context(), topic, max)
		if err != nil {
			httputil.Fail(deps.Log, w, "catalog search failed", err, http.StatusBadGateway)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"topic":  topic,
			"papers": papers,
		})
	}
}

func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req summarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			httputil.Fail(deps.Log, w, "text must not be blank", nil, http.StatusBadRequest)
			return
		}
		serveSummary(deps, w, r, req)
	}
}

func summarizeFileHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".txt" && ext != ".pdf" {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		text := extractText(header.Filename, content, deps)
		if strings.TrimSpace(text) == "" {
			httputil.Fail(deps.Log, w, "file contains no extractable text", nil, http.StatusBadRequest)
			return
		}

		serveSummary(deps, w, r, summarizeRequest{
			Text:     text,
			Mode:     r.FormValue("mode"),
			Provider: r.FormValue("provider"),
			Source:   header.Filename,
		})
	}
}

// serveSummary runs the cache-engine-store pipeline shared by the text and
// file summarize endpoints.
func serveSummary(deps app.Deps, w http.ResponseWriter, r *http.Request, req summarizeRequest) {
	ctx := r.Context()
	providerName := req.Provider
	if providerName == "" {
		providerName = provider.NameOffline
	}
	source := req.Source
	if source == "" {
		source = "text"
	}

	cacheKey := cache.Key(req.Text, req.Mode, providerName)
	if cached, err := deps.Cache.GetSynthesis(ctx, cacheKey); err == nil && cached != nil {
		deps.Log.Info("cache hit", "provider", providerName)
		writeSummary(w, *cached, providerName, true)
		return
	}

	result := deps.Engine.Summarize(ctx, req.Text, req.Mode, providerName)

	cacheTTL := time.Duration(deps.Config.CacheTTL) * time.Second
	if err := deps.Cache.SetSynthesis(ctx, cacheKey, &result, cacheTTL); err != nil {
		deps.Log.Warn("failed to cache result", "err", err)
	}

	// The library is best-effort: a store failure never fails the request.
	if _, err := deps.Store.SaveRecord(ctx, store.Record{
		Source:      source,
		Summary:     result.Summary,
		KeyInsights: result.KeyInsights,
		Provider:    providerName,
	}); err != nil {
		deps.Log.Warn("failed to archive summary", "err", err)
	}

	writeSummary(w, result, providerName, false)
}

func writeSummary(w http.ResponseWriter, result synthesis.Result, providerName string, cached bool) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"summary":      result.Summary,
		"key_insights": result.KeyInsights,
		"bullets":      result.Bullets,
		"provider":     providerName,
		"cached":       cached,
	})
}

func chatHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if strings.TrimSpace(req.Context) == "" || strings.TrimSpace(req.Question) == "" {
			httputil.Fail(deps.Log, w, "context and question must not be blank", nil, http.StatusBadRequest)
			return
		}

		providerName := req.Provider
		if providerName == "" {
			providerName = provider.NameOffline
		}
		answer := deps.Engine.Chat(r.Context(), req.Context, req.Question, req.Mode, providerName, req.History)

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"answer":   answer,
			"provider": providerName,
		})
	}
}

func libraryHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 50)
		records, err := deps.Store.ListRecords(r.Context(), limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list library", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"records": records})
	}
}

func alertsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, deps.Alerts.Snapshot())
	}
}

func addTopicHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req topicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if err := deps.Alerts.AddTopic(req.Topic); err != nil {
			httputil.Fail(deps.Log, w, "failed to save topic", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, deps.Alerts.Snapshot())
	}
}

func addAuthorHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if err := deps.Alerts.AddAuthor(req.Author); err != nil {
			httputil.Fail(deps.Log, w, "failed to save author", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, deps.Alerts.Snapshot())
	}
}

func scanHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Queue == nil {
			httputil.Fail(deps.Log, w, "alert scanning is not enabled", nil, http.StatusServiceUnavailable)
			return
		}
		task := queue.Task{
			ID:          uuid.New(),
			Type:        queue.TaskTypeAlertScan,
			MaxAttempts: 3,
		}
		if err := queue.EnqueueWithRetry(r.Context(), deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			httputil.Fail(deps.Log, w, "failed to enqueue scan; please retry", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
			"task_id": task.ID.String(),
			"status":  "queued",
		})
	}
}

func matchesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := strings.TrimSpace(r.URL.Query().Get("topic"))
		limit := parseLimit(r, 50)
		matches, err := deps.Store.ListMatches(r.Context(), topic, limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to list matches", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches})
	}
}

func readingListHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"reading_list": deps.Alerts.Snapshot().ReadingList,
		})
	}
}

func saveReadingHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req readingListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if err := deps.Alerts.SaveEntry(alertsEntry(req)); err != nil {
			httputil.Fail(deps.Log, w, "failed to save entry", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"reading_list": deps.Alerts.Snapshot().ReadingList,
		})
	}
}

func alertsEntry(req readingListRequest) alerts.Entry {
	return alerts.Entry{Title: req.Title, URL: req.URL, Notes: req.Notes}
}

func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 200 {
		return def
	}
	return n
}

// extractText extracts text from uploaded files, with PDF support.
func extractText(filename string, content []byte, deps app.Deps) string {
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		text, err := extractPDF(content)
		if err != nil {
			deps.Log.Warn("pdf extraction failed, using raw bytes", "err", err, "filename", filename)
			return string(content)
		}
		return text
	}
	return string(content)
}

func extractPDF(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
