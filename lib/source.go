package lib

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const SourceExtension = ".lai"

// SourceFile is one loaded Lai file split into lines without their line
// terminators.
type SourceFile struct {
	Name  string
	Lines []string
}

func NewSourceFile(name string, content string) SourceFile {
	if content == "" {
		return SourceFile{Name: name, Lines: []string{}}
	}

	lines := strings.Split(content, "\n")
	// A trailing newline ends the last line rather than starting a new one.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return SourceFile{Name: name, Lines: lines}
}

// Line returns the 0-based line i, or "" when it does not exist.
func (s SourceFile) Line(i int) string {
	if i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

func ReadSourceFile(filePath string) (SourceFile, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return SourceFile{}, err
	}
	return NewSourceFile(filePath, string(bytes)), nil
}

func ReadSourceFiles(filePaths []string) ([]SourceFile, error) {
	sources := []SourceFile{}
	for _, filePath := range filePaths {
		src, err := ReadSourceFile(filePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ReadSourceDir loads every .lai file in dir, sorted by name.
func ReadSourceDir(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	filePaths := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SourceExtension) {
			continue
		}
		filePaths = append(filePaths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(filePaths)

	return ReadSourceFiles(filePaths)
}
