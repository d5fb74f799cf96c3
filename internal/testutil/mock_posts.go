// Package testutil provides testing utilities for the post collection client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sternrassler/postfeed/pkg/feed"
)

// MockPosts is an in-memory post collection served over HTTP. It answers
// GET /posts?_page=&_limit= (or page/limit) and GET /posts/{id}.
type MockPosts struct {
	server *httptest.Server

	mu       sync.RWMutex
	posts    []feed.Item
	failures map[int]int // page -> status code to answer instead
	rawBody  map[int]string
	delay    time.Duration

	// Tracking
	RequestCount int
	PageRequests []int
}

// NewMockPosts creates a mock collection holding n posts with ids 1..n.
func NewMockPosts(n int) *MockPosts {
	mock := &MockPosts{
		posts:    GeneratePosts(1, n),
		failures: make(map[int]int),
		rawBody:  make(map[int]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/posts", mock.handleList)
	mux.HandleFunc("/posts/", mock.handleDetail)
	mock.server = httptest.NewServer(mux)

	return mock
}

// GeneratePosts returns posts with ids from..to inclusive.
func GeneratePosts(from, to int) []feed.Item {
	if to < from {
		return []feed.Item{}
	}
	posts := make([]feed.Item, 0, to-from+1)
	for id := from; id <= to; id++ {
		posts = append(posts, feed.Item{
			ID:     int64(id),
			UserID: int64((id-1)/10 + 1),
			Title:  fmt.Sprintf("post %d", id),
			Body:   fmt.Sprintf("body of post %d", id),
		})
	}
	return posts
}

// URL returns the collection URL (server URL + "/posts").
func (m *MockPosts) URL() string {
	return m.server.URL + "/posts"
}

// Close shuts down the mock server.
func (m *MockPosts) Close() {
	m.server.Close()
}

// FailPage makes requests for page answer statusCode until cleared with 0.
func (m *MockPosts) FailPage(page, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if statusCode == 0 {
		delete(m.failures, page)
		return
	}
	m.failures[page] = statusCode
}

// SetRawBody makes page answer 200 with body verbatim.
func (m *MockPosts) SetRawBody(page int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawBody[page] = body
}

// SetDelay delays every response.
func (m *MockPosts) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockPosts) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPageRequests returns the page numbers requested, in arrival order.
func (m *MockPosts) GetPageRequests() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.PageRequests...)
}

func (m *MockPosts) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, 1, "_page", "page")
	limit := queryInt(r, 10, "_limit", "limit")

	m.mu.Lock()
	m.RequestCount++
	m.PageRequests = append(m.PageRequests, page)
	status := m.failures[page]
	raw, hasRaw := m.rawBody[page]
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if status != 0 {
		http.Error(w, `{"error": "injected failure"}`, status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if hasRaw {
		w.Write([]byte(raw))
		return
	}

	m.mu.RLock()
	start := (page - 1) * limit
	end := start + limit
	if start > len(m.posts) {
		start = len(m.posts)
	}
	if end > len(m.posts) {
		end = len(m.posts)
	}
	body, _ := json.Marshal(m.posts[start:end])
	m.mu.RUnlock()

	w.Write(body)
}

func (m *MockPosts) handleDetail(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.RequestCount++
	m.mu.Unlock()

	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/posts/"), 10, 64)
	if err != nil {
		http.Error(w, `{}`, http.StatusNotFound)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, post := range m.posts {
		if post.ID == id {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			body, _ := json.Marshal(post)
			w.Write(body)
			return
		}
	}
	http.Error(w, `{}`, http.StatusNotFound)
}

func queryInt(r *http.Request, fallback int, names ...string) int {
	for _, name := range names {
		if v := r.URL.Query().Get(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return fallback
}
