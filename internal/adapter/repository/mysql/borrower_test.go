package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanbook-backend/internal/domain/borrower"

	"gorm.io/gorm"
)

func TestBorrowerCRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	b := &borrower.Borrower{Name: "Siti Aminah", Email: "siti@example.com"}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID == 0 {
		t.Fatalf("Create did not set ID")
	}

	got, err := repo.GetByEmail(ctx, "siti@example.com")
	if err != nil || got.ID != b.ID {
		t.Fatalf("GetByEmail = (%+v, %v)", got, err)
	}

	b.Name = "Siti A."
	if err := repo.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = repo.GetByIDForUpdate(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if got.Name != "Siti A." {
		t.Fatalf("name not updated: %q", got.Name)
	}

	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, b.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, b.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found deleting twice, got %v", err)
	}
}

func TestBorrowerCreate_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &borrower.Borrower{Name: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, &borrower.Borrower{Name: "B", Email: "dup@example.com"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestBorrowerList_NameFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, name := range []string{"Siti Aminah", "Budi Santoso", "Aminah Lubis"} {
		b := &borrower.Borrower{Name: name, Email: name[:4] + "@example.com", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	all, err := repo.List(ctx, borrower.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Aminah Lubis" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	got, err := repo.List(ctx, borrower.Filter{NameContains: "AMINAH"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}
