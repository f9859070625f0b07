// File format encoding.
//
// The library file is a single JSON array of book objects, each with
// exactly the fields title, author, pages and is_available. Encode writes
// the compact form by default so that files stay byte-compatible with
// existing collections. Decode is strict about the four fields (a missing
// or mistyped field is corruption, not a default) but ignores unknown
// extra fields. Repeating one of the four fields within an object is
// corruption too; the decoder alone would silently keep the last value.
package shelf

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// wireBook mirrors Book with pointer fields so that Decode can tell a
// missing field from a zero value. Pages stays raw so the range and sign
// checks are ours rather than the decoder's.
type wireBook struct {
	Title     *string         `json:"title"`
	Author    *string         `json:"author"`
	Pages     json.RawMessage `json:"pages"`
	Available *bool           `json:"is_available"`
}

// Encode serialises the whole Store. An empty Store encodes as "[]".
func Encode(s *Store, indent bool) ([]byte, error) {
	books := s.Books()
	if books == nil {
		books = []Book{}
	}
	if indent {
		return json.MarshalIndent(books, "", "  ")
	}
	return json.Marshal(books)
}

// Decode parses a library file. Any structural problem is reported as
// ErrCorruptFile.
func Decode(data []byte) (*Store, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrCorruptFile)
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrCorruptFile)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}

	books := make([]Book, 0, len(raw))
	for i, elem := range raw {
		if key, dup := duplicateKey(elem); dup {
			return nil, fmt.Errorf("%w: book %d: duplicate field %q", ErrCorruptFile, i, key)
		}
		var w wireBook
		if err := json.Unmarshal(elem, &w); err != nil {
			return nil, fmt.Errorf("%w: book %d: %w", ErrCorruptFile, i, err)
		}
		b, err := w.book()
		if err != nil {
			return nil, fmt.Errorf("%w: book %d: %w", ErrCorruptFile, i, err)
		}
		books = append(books, b)
	}
	return &Store{books: books}, nil
}

func (w wireBook) book() (Book, error) {
	switch {
	case w.Title == nil:
		return Book{}, errMissing("title")
	case w.Author == nil:
		return Book{}, errMissing("author")
	case len(w.Pages) == 0:
		return Book{}, errMissing("pages")
	case w.Available == nil:
		return Book{}, errMissing("is_available")
	}

	pages, err := strconv.ParseUint(string(bytes.TrimSpace(w.Pages)), 10, 32)
	if err != nil {
		return Book{}, fmt.Errorf("pages %s is not an unsigned 32-bit integer", w.Pages)
	}

	return Book{
		Title:     *w.Title,
		Author:    *w.Author,
		Pages:     uint32(pages),
		Available: *w.Available,
	}, nil
}

func errMissing(field string) error {
	return fmt.Errorf("missing field %q", field)
}

// bookFields are the keys checked for repeats. Unknown keys are ignored,
// repeated or not.
var bookFields = map[string]bool{
	"title":        true,
	"author":       true,
	"pages":        true,
	"is_available": true,
}

// duplicateKey reports the first book field that appears twice at the top
// level of a JSON object. obj must already be valid JSON; anything but an
// object reports no duplicate.
func duplicateKey(obj []byte) (string, bool) {
	obj = bytes.TrimSpace(obj)
	if len(obj) == 0 || obj[0] != '{' {
		return "", false
	}

	seen := make(map[string]bool)
	depth := 0
	expectKey := false
	for i := 0; i < len(obj); i++ {
		switch c := obj[i]; c {
		case '{', '[':
			depth++
			expectKey = c == '{' && depth == 1
		case '}', ']':
			depth--
		case ',':
			expectKey = depth == 1
		case '"':
			end := stringEnd(obj, i)
			if expectKey {
				// Compare unescaped so "title" and "\u0074itle" collide.
				var key string
				if err := json.Unmarshal(obj[i:end+1], &key); err != nil {
					key = string(obj[i+1 : end])
				}
				if seen[key] && bookFields[key] {
					return key, true
				}
				seen[key] = true
				expectKey = false
			}
			i = end
		}
	}
	return "", false
}

// stringEnd returns the index of the quote closing the string that opens
// at start.
func stringEnd(b []byte, start int) int {
	for j := start + 1; j < len(b); j++ {
		switch b[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}
	return len(b) - 1
}
