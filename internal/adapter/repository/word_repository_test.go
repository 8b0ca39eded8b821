package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/michalkratky/slovicka/internal/entity"
)

func TestWordCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newTestDB(t))

	created, err := repo.Create(ctx, &entity.Word{
		Slovak:   "mačka",
		English:  "cat",
		Category: "animals",
		Synonyms: entity.SynonymSet{
			Slovak:  []string{"kocúr"},
			English: []string{"kitty", "feline"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("create did not assign an ID")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slovak != "mačka" || got.English != "cat" || got.Category != "animals" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Synonyms.Slovak) != 1 || len(got.Synonyms.English) != 2 {
		t.Fatalf("synonyms = %+v, want 1 slovak + 2 english", got.Synonyms)
	}
}

func TestWordCreateDuplicatePair(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newTestDB(t))

	if _, err := repo.Create(ctx, &entity.Word{Slovak: "pes", English: "dog", Category: "animals"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, &entity.Word{Slovak: "pes", English: "dog", Category: "basic"})
	if !errors.Is(err, entity.ErrDuplicateWord) {
		t.Fatalf("err = %v, want ErrDuplicateWord", err)
	}
}

func TestWordGetMissing(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))
	if _, err := repo.GetByID(context.Background(), 42); !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("err = %v, want ErrWordNotFound", err)
	}
}

func TestWordUpdateKeepsSynonymsUnlessReplaced(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newTestDB(t))
	created, err := repo.Create(ctx, &entity.Word{
		Slovak: "mačka", English: "cat", Category: "animals",
		Synonyms: entity.SynonymSet{English: []string{"kitty"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	created.English = "house cat"
	if err := repo.Update(ctx, created, false); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetByID(ctx, created.ID)
	if got.English != "house cat" {
		t.Fatalf("english = %q", got.English)
	}
	if len(got.Synonyms.English) != 1 {
		t.Fatalf("synonyms dropped without replace: %+v", got.Synonyms)
	}

	created.Synonyms = entity.SynonymSet{English: []string{"feline", "tomcat"}}
	if err := repo.Update(ctx, created, true); err != nil {
		t.Fatalf("update with replace: %v", err)
	}
	got, _ = repo.GetByID(ctx, created.ID)
	if len(got.Synonyms.English) != 2 || got.Synonyms.English[0] != "feline" {
		t.Fatalf("synonyms = %+v, want replaced list", got.Synonyms)
	}
}

func TestWordUpdateMissing(t *testing.T) {
	repo := NewWordRepository(newTestDB(t))
	err := repo.Update(context.Background(), &entity.Word{ID: 99, Slovak: "x", English: "y", Category: "z"}, false)
	if !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("err = %v, want ErrWordNotFound", err)
	}
}

func TestWordListByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newTestDB(t))
	seed := []*entity.Word{
		{Slovak: "mačka", English: "cat", Category: "animals"},
		{Slovak: "pes", English: "dog", Category: "animals"},
		{Slovak: "dom", English: "house", Category: "basic"},
	}
	for _, w := range seed {
		if _, err := repo.Create(ctx, w); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d words, want 3", len(all))
	}

	animals, err := repo.List(ctx, []string{"animals"})
	if err != nil {
		t.Fatalf("list animals: %v", err)
	}
	if len(animals) != 2 {
		t.Fatalf("animals = %d words, want 2", len(animals))
	}
}

func TestWordDeleteCascadesSynonyms(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewWordRepository(db)
	created, err := repo.Create(ctx, &entity.Word{
		Slovak: "mačka", English: "cat", Category: "animals",
		Synonyms: entity.SynonymSet{English: []string{"kitty"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("word still readable after delete: %v", err)
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM synonyms"); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("synonym rows = %d after cascade delete, want 0", count)
	}
}

func TestAddSynonymIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newTestDB(t))
	created, err := repo.Create(ctx, &entity.Word{Slovak: "mačka", English: "cat", Category: "animals"})
	if err != nil {
		t.Fatal(err)
	}

	added, err := repo.AddSynonym(ctx, created.ID, entity.LanguageEnglish, "kitty")
	if err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	added, err = repo.AddSynonym(ctx, created.ID, entity.LanguageEnglish, "Kitty")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("case-variant duplicate was added")
	}

	texts, err := repo.GetSynonyms(ctx, created.ID, entity.LanguageEnglish)
	if err != nil {
		t.Fatal(err)
	}
	if len(texts) != 1 {
		t.Fatalf("synonyms = %v, want single entry", texts)
	}
}

func TestCategoryStats(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newTestDB(t))
	if _, err := repo.Create(ctx, &entity.Word{
		Slovak: "mačka", English: "cat", Category: "animals",
		Synonyms: entity.SynonymSet{English: []string{"kitty"}},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(ctx, &entity.Word{Slovak: "pes", English: "dog", Category: "animals"}); err != nil {
		t.Fatal(err)
	}

	stats, err := repo.CategoryStats(ctx)
	if err != nil {
		t.Fatalf("category stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats = %d rows, want 1", len(stats))
	}
	if stats[0].WordCount != 2 || stats[0].WordsWithSynonyms != 1 {
		t.Fatalf("stats = %+v, want 2 words / 1 with synonyms", stats[0])
	}
}
