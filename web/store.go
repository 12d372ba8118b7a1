package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mhpenta/autoblogger"
)

// ErrArticleNotFound is returned when no stored article has the given ID.
var ErrArticleNotFound = errors.New("article not found")

// ArticleStore persists articles as one JSON file per article in a data
// directory. It serves the dashboard; it is not a publishing target.
type ArticleStore struct {
	dir string
	mu  sync.RWMutex
}

// NewArticleStore creates a store rooted at dir, creating it if needed.
func NewArticleStore(dir string) (*ArticleStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &ArticleStore{dir: dir}, nil
}

// Save writes the article, replacing any previous version.
func (s *ArticleStore) Save(article *autoblogger.Article) error {
	path, err := s.pathFor(article.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding article: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(path, data, 0o644)
}

// Get loads an article by ID.
func (s *ArticleStore) Get(id string) (*autoblogger.Article, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("reading article: %w", err)
	}

	var article autoblogger.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("decoding article %s: %w", id, err)
	}
	return &article, nil
}

// List returns all stored articles, newest first. Files that fail to decode
// are skipped rather than failing the whole listing.
func (s *ArticleStore) List() ([]*autoblogger.Article, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	articles := make([]*autoblogger.Article, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		article, err := s.Get(id)
		if err != nil {
			continue
		}
		articles = append(articles, article)
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

// Delete removes an article by ID.
func (s *ArticleStore) Delete(id string) error {
	path, err := s.pathFor(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("deleting article: %w", err)
	}
	return nil
}

// pathFor maps an ID to its file, rejecting IDs that would escape the data
// directory.
func (s *ArticleStore) pathFor(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid article id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}
