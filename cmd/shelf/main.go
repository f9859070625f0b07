// Command shelf is an interactive manager for a personal book collection
// stored in library.json in the working directory.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jpl-au/shelf"
	"github.com/jpl-au/shelf/internal/console"
)

const libraryFile = "library.json"

func main() {
	if err := run(libraryFile, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
		os.Exit(1)
	}
}

// run opens the library, drives the menu and closes the library. A load or
// save failure is returned as is so main can exit non-zero.
func run(path string, in io.Reader, out, errOut io.Writer) error {
	lib, err := shelf.Open(path, shelf.Config{
		Logger: log.New(errOut, "shelf: ", 0),
	})
	if err != nil {
		return err
	}
	defer lib.Close()

	return console.New(lib, in, out).Run()
}
