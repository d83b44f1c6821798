package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abhisek/studybuddy/internal/logger"
)

// ErrNoSections is returned when there is nothing to export.
var ErrNoSections = errors.New("no sections to export")

// Uploader publishes an exported document and returns its location.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Exporter writes notes to a directory and optionally uploads them.
type Exporter struct {
	dir      string
	uploader Uploader
	log      *logger.Logger
}

// NewExporter creates an exporter writing into dir. uploader may be nil.
func NewExporter(dir string, uploader Uploader, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{dir: dir, uploader: uploader, log: log}
}

// Export renders notes, writes them to the export directory and returns the
// local path. Upload failures are logged and do not fail the export.
func (e *Exporter) Export(ctx context.Context, notes Notes) (string, error) {
	if len(notes.Sections) == 0 {
		return "", ErrNoSections
	}

	doc, err := Render(ctx, notes)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := FileName(notes.FilePrefix, notes.Topic)
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write notes: %w", err)
	}
	e.log.Info("notes exported", "path", path, "sections", len(notes.Sections), "bytes", len(doc))

	if e.uploader != nil {
		uri, err := e.uploader.Upload(ctx, name, doc)
		if err != nil {
			e.log.Warn("notes upload failed", "file", name, "error", err)
		} else {
			e.log.Info("notes uploaded", "uri", uri)
		}
	}
	return path, nil
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pathSeparator = strings.NewReplacer("/", "-", `\`, "-")
)

// FileName returns "<prefix>-<topic>.html" with whitespace runs in the
// topic replaced by a single dash.
func FileName(prefix, topic string) string {
	if prefix == "" {
		prefix = "study-notes"
	}
	topic = pathSeparator.Replace(whitespaceRun.ReplaceAllString(topic, "-"))
	return prefix + "-" + topic + ".html"
}
