//go:build ignore

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Bidi test files of the Unicode version supported by golang.org/x/text.
const ucdURL = "https://www.unicode.org/Public/15.0.0/ucd/"

var files = []string{
	"BidiCharacterTest.txt",
	"BidiTest.txt",
}

func main() {
	for _, file := range files {
		if err := download(ucdURL+file, filepath.Join("ucd", file)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to download: %v\n", err)
			os.Exit(1)
		}
	}
}

func download(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("GET failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %v: %w", path, err)
	}
	if _, err = io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to copy %v: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	return nil
}
