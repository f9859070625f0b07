// Package console runs the interactive menu over a shelf.Library.
//
// A Session reads one line per prompt. Input mistakes (an unknown menu
// choice, a bad index, an unparsable page count) are reported and the loop
// continues. A failed save is returned from Run, since carrying on would
// leave the file out of step with what the user sees.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/shelf"
)

const menu = `
Library Menu:
1. Add a book
2. Search for a book
3. Borrow a book
4. Return a book
5. Edit a book
6. Delete a book
7. Show library statistics
8. Exit
Books are numbered from 0 (see Search). Deleting a book renumbers the books after it.`

// Message texts shared with the tests.
const (
	msgInvalidChoice = "Invalid choice! Please try again."
	msgInvalidIndex  = "Invalid index."
	msgInvalidPages  = "Invalid page count."
	msgNoResults     = "No books found."
	msgRemoved       = "Book removed."
)

// errEOF ends the session when input runs out at any prompt.
var errEOF = errors.New("end of input")

// Session is one run of the menu loop.
type Session struct {
	lib *shelf.Library
	in  *bufio.Reader
	out io.Writer
}

// New returns a Session reading commands from in and writing to out.
func New(lib *shelf.Library, in io.Reader, out io.Writer) *Session {
	return &Session{
		lib: lib,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run loops until the user exits or input ends, both of which return nil.
// Any other error is fatal and the library file may not reflect the last
// change.
func (s *Session) Run() error {
	for {
		s.println(menu)
		choice, err := s.line()
		if err != nil {
			return s.end(err)
		}

		var cmd func() error
		switch strings.TrimSpace(choice) {
		case "1":
			cmd = s.add
		case "2":
			cmd = s.search
		case "3":
			cmd = s.borrow
		case "4":
			cmd = s.giveBack
		case "5":
			cmd = s.edit
		case "6":
			cmd = s.remove
		case "7":
			cmd = s.stats
		case "8":
			return nil
		default:
			s.println(msgInvalidChoice)
			continue
		}

		if err := cmd(); err != nil {
			return s.end(err)
		}
	}
}

// end maps running out of input to a clean exit.
func (s *Session) end(err error) error {
	if errors.Is(err, errEOF) {
		return nil
	}
	return err
}

func (s *Session) add() error {
	title, err := s.prompt("Enter the title of the book:")
	if err != nil {
		return err
	}
	author, err := s.prompt("Enter the author of the book:")
	if err != nil {
		return err
	}

	var pages uint32
	for {
		in, err := s.prompt("Enter the number of pages:")
		if err != nil {
			return err
		}
		if pages, err = shelf.ParsePages(in); err == nil {
			break
		}
		s.println(msgInvalidPages)
	}

	s.lib.Store().Add(shelf.NewBook(title, author, pages))
	return s.lib.Save()
}

func (s *Session) search() error {
	query, err := s.prompt("Enter your search query (title or author):")
	if err != nil {
		return err
	}

	matches := s.lib.Store().Search(query)
	if len(matches) == 0 {
		s.println(msgNoResults)
		return nil
	}
	for _, m := range matches {
		s.printf("[%d]\n%s\n", m.Index, m.Book.Describe())
	}
	return nil
}

func (s *Session) borrow() error {
	return s.change("borrow", func(b *shelf.Book) {
		if b.Borrow() {
			s.printf("You have borrowed \"%s\".\n", b.Title)
		} else {
			s.printf("\"%s\" is already borrowed.\n", b.Title)
		}
	})
}

func (s *Session) giveBack() error {
	return s.change("return", func(b *shelf.Book) {
		if b.Return() {
			s.printf("You have returned \"%s\".\n", b.Title)
		} else {
			s.printf("\"%s\" was not borrowed.\n", b.Title)
		}
	})
}

func (s *Session) edit() error {
	i, ok, err := s.index("edit")
	if err != nil || !ok {
		return err
	}

	// Collect all three answers before touching the book so running out of
	// input part way through leaves it unchanged.
	title, err := s.prompt("Enter a new title (leave blank to keep current):")
	if err != nil {
		return err
	}
	author, err := s.prompt("Enter a new author (leave blank to keep current):")
	if err != nil {
		return err
	}
	pages, err := s.prompt("Enter a new page count (leave blank to keep current):")
	if err != nil {
		return err
	}

	err = s.lib.Store().Update(i, func(b *shelf.Book) {
		if title != "" {
			b.Title = title
		}
		if author != "" {
			b.Author = author
		}
		// Blank or unparsable keeps the current count.
		if n, err := shelf.ParsePages(pages); err == nil {
			b.Pages = n
		}
	})
	if err != nil {
		s.println(msgInvalidIndex)
		return nil
	}
	return s.lib.Save()
}

func (s *Session) remove() error {
	i, ok, err := s.index("delete")
	if err != nil || !ok {
		return err
	}
	if err := s.lib.Store().Delete(i); err != nil {
		s.println(msgInvalidIndex)
		return nil
	}
	s.println(msgRemoved)
	return s.lib.Save()
}

func (s *Session) stats() error {
	st := s.lib.Store().Stats()
	s.printf("Total books: %d\nBorrowed books: %d\nAvailable books: %d\n",
		st.Total, st.Borrowed, st.Available)
	return nil
}

// change applies fn to the book the user picks and saves.
func (s *Session) change(verb string, fn func(*shelf.Book)) error {
	i, ok, err := s.index(verb)
	if err != nil || !ok {
		return err
	}
	if err := s.lib.Store().Update(i, fn); err != nil {
		s.println(msgInvalidIndex)
		return nil
	}
	return s.lib.Save()
}

// index prompts for a book position. ok is false, with the message already
// printed, when the answer is not a number or is out of range.
func (s *Session) index(verb string) (int, bool, error) {
	in, err := s.prompt("Enter the index of the book to " + verb + ":")
	if err != nil {
		return 0, false, err
	}
	i, err := shelf.ParseIndex(in)
	if err != nil || i >= s.lib.Store().Len() {
		s.println(msgInvalidIndex)
		return 0, false, nil
	}
	return i, true, nil
}

// prompt prints msg and returns the next line, trimmed.
func (s *Session) prompt(msg string) (string, error) {
	s.println(msg)
	in, err := s.line()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(in), nil
}

// line reads one line of any length without its terminator. A final line
// with no newline still counts; only an empty read at end of input is
// errEOF.
func (s *Session) line() (string, error) {
	in, err := s.in.ReadString('\n')
	switch {
	case err == nil:
		return strings.TrimRight(in, "\r\n"), nil
	case errors.Is(err, io.EOF) && in != "":
		return in, nil
	case errors.Is(err, io.EOF):
		return "", errEOF
	default:
		return "", fmt.Errorf("read input: %w", err)
	}
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
