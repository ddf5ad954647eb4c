package playground

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Exporter is the file-export side channel: it saves a document under a
// suggested name and reports where it went.
type Exporter interface {
	Export(name string, doc []byte) (string, error)
}

// DirExporter writes into Dir without overwriting: the second export of
// jsbin.html becomes jsbin-1.html, and so on.
type DirExporter struct {
	Dir string
}

func (d DirExporter) Export(name string, doc []byte) (string, error) {
	dir := d.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		cand := name
		if i > 0 {
			cand = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		p := filepath.Join(dir, cand)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(doc); err != nil {
			_ = f.Close()
			return "", err
		}
		return p, f.Close()
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

// WriterExporter streams the document to W, ignoring the name.
type WriterExporter struct {
	W    io.Writer
	Name string
}

func (w WriterExporter) Export(name string, doc []byte) (string, error) {
	if _, err := w.W.Write(doc); err != nil {
		return "", err
	}
	if w.Name != "" {
		return w.Name, nil
	}
	return name, nil
}
