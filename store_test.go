package shelf

import (
	"errors"
	"slices"
	"testing"
)

func testStore() *Store {
	return NewStore(
		NewBook("The Great Gatsby", "F. Scott Fitzgerald", 180),
		NewBook("Emma", "Jane Austen", 474),
		NewBook("Persuasion", "Jane Austen", 249),
	)
}

func titles(s *Store) []string {
	var out []string
	for _, b := range s.All() {
		out = append(out, b.Title)
	}
	return out
}

func TestAddAppends(t *testing.T) {
	s := NewStore()
	s.Add(NewBook("a", "x", 1))
	s.Add(NewBook("b", "y", 2))
	s.Add(NewBook("a", "x", 1)) // duplicates allowed

	if got, want := titles(s), []string{"a", "b", "a"}; !slices.Equal(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	s := testStore()

	b, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.Title != "Emma" {
		t.Errorf("Get(1).Title = %q, want Emma", b.Title)
	}

	// Get returns a copy.
	b.Title = "changed"
	if b2, _ := s.Get(1); b2.Title != "Emma" {
		t.Errorf("Get copy leaked into store: %q", b2.Title)
	}
}

func TestDeleteShiftsIndices(t *testing.T) {
	s := testStore()

	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, want := titles(s), []string{"Emma", "Persuasion"}; !slices.Equal(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
}

func TestOutOfRangeLeavesStoreUnchanged(t *testing.T) {
	for _, i := range []int{3, 4, 100, -1} {
		s := testStore()
		before := s.Books()

		if _, err := s.Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
		called := false
		if err := s.Update(i, func(*Book) { called = true }); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Update(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
		if called {
			t.Errorf("Update(%d) called fn", i)
		}
		if err := s.Delete(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Delete(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}

		if !slices.Equal(s.Books(), before) {
			t.Errorf("store changed after out-of-range %d: %v", i, s.Books())
		}
	}
}

func TestUpdate(t *testing.T) {
	s := testStore()
	if err := s.Update(2, func(b *Book) { b.Borrow() }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	b, _ := s.Get(2)
	if b.Available {
		t.Error("Update did not modify the stored book")
	}
}

func TestSearch(t *testing.T) {
	s := testStore()

	tests := []struct {
		query string
		want  []int
	}{
		{"great", []int{0}},
		{"GATSBY", []int{0}},
		{"the", []int{0}},
		{"austen", []int{1, 2}},
		{"e", []int{0, 1, 2}},
		{"", []int{0, 1, 2}},
		{"tolstoy", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []int
			for _, m := range s.Search(tt.query) {
				got = append(got, m.Index)
				if want, _ := s.Get(m.Index); m.Book != want {
					t.Errorf("match %d = %+v, want %+v", m.Index, m.Book, want)
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchEmptyStore(t *testing.T) {
	if got := NewStore().Search(""); len(got) != 0 {
		t.Errorf("Search on empty store = %v", got)
	}
}

func TestAllBreak(t *testing.T) {
	s := testStore()
	n := 0
	for range s.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterated %d times after break, want 1", n)
	}
}

// TestStatsConsistency runs a mixed sequence of operations and checks that
// available + borrowed == total after each one.
func TestStatsConsistency(t *testing.T) {
	s := NewStore()
	check := func(step string) {
		t.Helper()
		st := s.Stats()
		if st.Total != s.Len() || st.Available+st.Borrowed != st.Total {
			t.Errorf("%s: inconsistent stats %+v (len %d)", step, st, s.Len())
		}
	}

	check("empty")
	for i := range 5 {
		s.Add(NewBook("t", "a", uint32(i)))
		check("add")
	}
	s.Update(0, func(b *Book) { b.Borrow() })
	s.Update(3, func(b *Book) { b.Borrow() })
	s.Update(3, func(b *Book) { b.Borrow() })
	check("borrow")
	if st := s.Stats(); st.Borrowed != 2 || st.Available != 3 {
		t.Errorf("stats = %+v, want 2 borrowed 3 available", st)
	}
	s.Update(0, func(b *Book) { b.Return() })
	s.Update(1, func(b *Book) { b.Return() })
	check("return")
	s.Delete(3)
	check("delete")
	if st := s.Stats(); st != (Stats{Total: 4, Borrowed: 0, Available: 4}) {
		t.Errorf("stats = %+v", st)
	}
}
