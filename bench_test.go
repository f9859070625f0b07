package shelf

import (
	"fmt"
	"path/filepath"
	"testing"
)

func benchStore(n int) *Store {
	s := NewStore()
	for i := range n {
		s.Add(NewBook(fmt.Sprintf("Title %d", i), fmt.Sprintf("Author %d", i%50), uint32(i)))
	}
	return s
}

func BenchmarkSearch(b *testing.B) {
	s := benchStore(10000)
	b.ResetTimer()
	for b.Loop() {
		s.Search("author 7")
	}
}

func BenchmarkEncode(b *testing.B) {
	s := benchStore(10000)
	b.ResetTimer()
	for b.Loop() {
		Encode(s, false)
	}
}

func BenchmarkDecode(b *testing.B) {
	data, _ := Encode(benchStore(10000), false)
	b.ResetTimer()
	for b.Loop() {
		Decode(data)
	}
}

func BenchmarkSave(b *testing.B) {
	lib, err := Open(filepath.Join(b.TempDir(), "library.json"), Config{})
	if err != nil {
		b.Fatal(err)
	}
	defer lib.Close()
	lib.store = benchStore(1000)
	b.ResetTimer()
	for b.Loop() {
		if err := lib.Save(); err != nil {
			b.Fatal(err)
		}
	}
}
