package web

import (
	"errors"
	"testing"
	"time"

	"github.com/mhpenta/autoblogger"
)

func storeArticle(id string, created time.Time) *autoblogger.Article {
	return &autoblogger.Article{
		ID:        id,
		Title:     "Stored Article",
		Content:   "Body text for the stored article.",
		BlogID:    "garden",
		CreatedAt: created,
	}
}

func TestArticleStore_SaveGetDelete(t *testing.T) {
	store, err := NewArticleStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	article := storeArticle("art_abc123", time.Now())
	if err := store.Save(article); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get("art_abc123")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != article.Title || got.BlogID != article.BlogID {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if err := store.Delete("art_abc123"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("art_abc123"); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("expected ErrArticleNotFound after delete, got %v", err)
	}
}

func TestArticleStore_GetMissing(t *testing.T) {
	store, err := NewArticleStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get("art_missing"); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("expected ErrArticleNotFound, got %v", err)
	}
	if err := store.Delete("art_missing"); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleStore_ListNewestFirst(t *testing.T) {
	store, err := NewArticleStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	for i, id := range []string{"art_old", "art_mid", "art_new"} {
		if err := store.Save(storeArticle(id, now.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	articles, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	if articles[0].ID != "art_new" || articles[2].ID != "art_old" {
		t.Errorf("wrong order: %s, %s, %s", articles[0].ID, articles[1].ID, articles[2].ID)
	}
}

func TestArticleStore_RejectsPathTraversal(t *testing.T) {
	store, err := NewArticleStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"", "../escape", "a/b", `a\b`, ".."} {
		if _, err := store.Get(id); err == nil || errors.Is(err, ErrArticleNotFound) {
			t.Errorf("id %q should be rejected as invalid", id)
		}
	}
}
