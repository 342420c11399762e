package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// withExtension replaces the extension of path with ext. A leading dot in
// the file name does not start an extension, so ".profile" becomes
// ".profile.png".
func withExtension(path, ext string) string {
	dir, file := filepath.Split(path)
	stem := file
	if i := strings.LastIndexByte(file, '.'); i > 0 {
		stem = file[:i]
	}
	return dir + stem + "." + ext
}

func readFile(path string) ([]byte, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return io.ReadAll(in)
}

// writeFile creates path and copies src into it.
func writeFile(path string, src io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeBytes(path string, data []byte) error {
	return writeFile(path, bytes.NewReader(data))
}
