// In-memory collection.
//
// Store is an ordered slice addressed by 0-based position. Every lookup is
// a linear scan; collections are small and the file is rewritten in full on
// every change, so there is nothing to gain from an index. Accessors hand
// out copies so a caller can only change a book through Update.
package shelf

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Store holds the collection in insertion order.
type Store struct {
	books []Book
}

// NewStore returns a Store holding the given books in order.
func NewStore(books ...Book) *Store {
	return &Store{books: slices.Clone(books)}
}

// Len returns the number of books.
func (s *Store) Len() int {
	return len(s.books)
}

// Add appends a book to the end of the collection.
func (s *Store) Add(b Book) {
	s.books = append(s.books, b)
}

// Get returns a copy of the book at index i.
func (s *Store) Get(i int) (Book, error) {
	if err := s.check(i); err != nil {
		return Book{}, err
	}
	return s.books[i], nil
}

// Update calls fn with a pointer to the book at index i. fn is not called
// when i is out of range.
func (s *Store) Update(i int, fn func(*Book)) error {
	if err := s.check(i); err != nil {
		return err
	}
	fn(&s.books[i])
	return nil
}

// Delete removes the book at index i. Later books move down one position.
func (s *Store) Delete(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.books = slices.Delete(s.books, i, i+1)
	return nil
}

func (s *Store) check(i int) error {
	if i < 0 || i >= len(s.books) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(s.books))
	}
	return nil
}

// All yields every book with its current index, in order. Break from the
// range loop to stop early.
func (s *Store) All() iter.Seq2[int, Book] {
	return func(yield func(int, Book) bool) {
		for i, b := range s.books {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Books returns a copy of the collection.
func (s *Store) Books() []Book {
	return slices.Clone(s.books)
}

// Match is a search hit: the book and its index at the time of the search.
type Match struct {
	Index int
	Book  Book
}

// Search returns books whose title or author contains query, ignoring
// case. An empty query matches every book.
func (s *Store) Search(query string) []Match {
	needle := strings.ToLower(query)
	var matches []Match
	for i, b := range s.All() {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) {
			matches = append(matches, Match{Index: i, Book: b})
		}
	}
	return matches
}

// Stats summarises availability across the collection.
type Stats struct {
	Total     int
	Borrowed  int
	Available int
}

// Stats counts borrowed books in a single pass.
func (s *Store) Stats() Stats {
	var borrowed int
	for _, b := range s.books {
		if !b.Available {
			borrowed++
		}
	}
	return Stats{
		Total:     len(s.books),
		Borrowed:  borrowed,
		Available: len(s.books) - borrowed,
	}
}
