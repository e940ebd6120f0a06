// Package logsource reads the node's log file.
package logsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ChainHealth/internal/domain/faults"
	applogger "ChainHealth/pkg/logger"

	"github.com/adrg/xdg"
)

// DefaultRelativePath is the node log location under the user's home directory.
const DefaultRelativePath = ".grin/main/grin-server.log"

// DefaultPath returns the node log path for the current user.
func DefaultPath() string {
	return filepath.Join(xdg.Home, DefaultRelativePath)
}

// FileSource reads every line of a log file, terminators included.
type FileSource struct {
	path string
	log  *applogger.Logger
}

// NewFileSource returns a source for path, or DefaultPath when path is empty.
func NewFileSource(path string, l *applogger.Logger) *FileSource {
	if path == "" {
		path = DefaultPath()
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &FileSource{path: path, log: l.Component("logsource")}
}

// Path returns the file being read.
func (s *FileSource) Path() string {
	return s.path
}

// Lines returns the file's lines, each ending in "\n". A final line without a
// newline gets one, so every line carries exactly one terminator character.
func (s *FileSource) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, faults.Unavailable(s.path, err)
	}
	defer f.Close()

	lines, err := readLines(ctx, f)
	if err != nil {
		return nil, faults.Unavailable(s.path, err)
	}
	s.log.Debug("node log read", applogger.String("path", s.path), applogger.Int("lines", len(lines)))
	return lines, nil
}

func readLines(ctx context.Context, r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var lines []string
	for {
		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
	}
}
