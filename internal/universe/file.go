package universe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FileSource reads one symbol per line from a local file. Blank lines and
// lines starting with '#' are ignored.
type FileSource struct {
	Path string
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Symbols(_ context.Context) ([]string, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open symbol file: %w", err)
	}
	defer fh.Close()

	var symbols []string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read symbol file: %w", err)
	}
	return symbols, nil
}
