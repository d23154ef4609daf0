package pagination

import (
	"testing"
	"time"
)

type row struct {
	id string
	at time.Time
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", at)

	params := &CursorParams{Cursor: encoded, Limit: 10}
	cursor, err := params.DecodeCursor()
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if cursor.ID != "abc-123" || !cursor.CreatedAt.Equal(at) {
		t.Errorf("decoded %+v, want id abc-123 at %v", cursor, at)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	params := &CursorParams{Cursor: "not-base64!!"}
	if _, err := params.DecodeCursor(); err == nil {
		t.Error("expected error for malformed cursor")
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	params := &CursorParams{}
	cursor, err := params.DecodeCursor()
	if err != nil || cursor != nil {
		t.Errorf("empty cursor should decode to nil, got %+v, %v", cursor, err)
	}
}

func TestNewCursorPagination(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := []row{
		{"a", base},
		{"b", base.Add(-time.Minute)},
		{"c", base.Add(-2 * time.Minute)},
	}

	// Fetched limit+1 rows: a next page exists and the extra row is trimmed.
	pag, items := NewCursorPagination(rows, 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.at },
	)
	if !pag.HasNext {
		t.Error("HasNext should be true when an extra row was fetched")
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if pag.NextCursor == nil {
		t.Fatal("NextCursor should point at the last returned row")
	}
	cursor, err := (&CursorParams{Cursor: *pag.NextCursor}).DecodeCursor()
	if err != nil {
		t.Fatalf("decoding NextCursor: %v", err)
	}
	if cursor.ID != "b" {
		t.Errorf("NextCursor id = %s, want b", cursor.ID)
	}

	// Exactly limit rows: last page.
	pag, items = NewCursorPagination(rows[:2], 2,
		func(r row) string { return r.id },
		func(r row) time.Time { return r.at },
	)
	if pag.HasNext {
		t.Error("HasNext should be false on the last page")
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		page, per   int
		wantPage    int
		wantPerPage int
	}{
		{"defaults applied", 0, 0, 1, 15},
		{"cap per page", 2, 500, 2, 100},
		{"valid passthrough", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaginationParams{Page: tt.page, PerPage: tt.per}
			p.Validate()
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got page %d per %d, want %d and %d", p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}
