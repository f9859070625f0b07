// Book records and the parsing helpers used to build them from user input.
package shelf

import (
	"fmt"
	"strconv"
	"strings"
)

// Book is one entry in the collection. The JSON names match the file
// format and must not change.
type Book struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Pages     uint32 `json:"pages"`
	Available bool   `json:"is_available"`
}

// NewBook returns an available book.
func NewBook(title, author string, pages uint32) Book {
	return Book{
		Title:     title,
		Author:    author,
		Pages:     pages,
		Available: true,
	}
}

// Status reports "Available" or "Borrowed".
func (b Book) Status() string {
	if b.Available {
		return "Available"
	}
	return "Borrowed"
}

// Describe renders the book as four labelled lines without a trailing
// newline.
func (b Book) Describe() string {
	return fmt.Sprintf("Title: %s\nAuthor: %s\nPages: %d\nStatus: %s",
		b.Title, b.Author, b.Pages, b.Status())
}

// Borrow marks the book as borrowed. It returns false, leaving the book
// untouched, if it was already borrowed.
func (b *Book) Borrow() bool {
	if !b.Available {
		return false
	}
	b.Available = false
	return true
}

// Return marks the book as available again. It returns false if the book
// was not borrowed.
func (b *Book) Return() bool {
	if b.Available {
		return false
	}
	b.Available = true
	return true
}

// ParsePages parses a page count. Surrounding whitespace is ignored; the
// value must fit an unsigned 32-bit integer.
func ParsePages(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPages, strings.TrimSpace(s))
	}
	return uint32(n), nil
}

// ParseIndex parses a 0-based book position. It does not check the
// position against any Store.
func ParseIndex(s string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil || n > uint64(maxInt) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, strings.TrimSpace(s))
	}
	return int(n), nil
}

const maxInt = int(^uint(0) >> 1)
