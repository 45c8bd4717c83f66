// Package persister writes a batch xml document back to the batch folder.
//
// The target is chosen from what is already on disk:
//
//	CHECK_ZIP_EXISTS
//	  ├─ archive present → WRITE_AS_ZIP   (<id>_batch.xml.zip, one entry <id>_batch.xml)
//	  └─ archive absent  → WRITE_AS_PLAIN (<id>_batch.xml)
//
// Either way the previous file is replaced wholesale, never merged.
package persister

import (
	"archive/zip"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"batchstamp/pkg/batchxml"
	"batchstamp/pkg/logger"
	"batchstamp/pkg/metrics"
	"batchstamp/pkg/serrors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Mode is the on-disk representation chosen for a batch xml.
type Mode string

const (
	// ModePlain writes <id>_batch.xml.
	ModePlain Mode = "plain"
	// ModeArchive writes <id>_batch.xml.zip.
	ModeArchive Mode = "archive"

	modeUnknown Mode = "unknown"
)

const fileMode = 0o644

// Options configure a Persister.
type Options struct {
	// SurfaceErrors makes Persist return write failures instead of logging
	// and dropping them.
	SurfaceErrors bool
	// Instruments records persistence metrics; nil disables them.
	Instruments *metrics.Instruments
}

// Persister writes batch documents to their canonical location.
type Persister struct {
	options Options
}

// New creates a Persister.
func New(options Options) *Persister {
	return &Persister{options: options}
}

// Target describes where a document will be written.
type Target struct {
	// Path is the canonical plain file path.
	Path string
	// ArchivePath is Path with the ".zip" suffix.
	ArchivePath string
	// Entry is the archive entry name.
	Entry string
}

// TargetFor derives the write locations from the document's
// BatchLocalPath and BatchInstanceIdentifier.
func TargetFor(doc *batchxml.Document) (Target, error) {
	localPath, ok := doc.BatchLocalPath()
	if !ok {
		return Target{}, serrors.With(serrors.ErrConfiguration,
			"unable to find the local folder path in batch xml file")
	}
	id, ok := doc.BatchInstanceIdentifier()
	if !ok {
		return Target{}, serrors.With(serrors.ErrConfiguration,
			"unable to find the batch instance id in batch xml file")
	}

	path := batchxml.Path(localPath, id)

	return Target{
		Path:        path,
		ArchivePath: path + batchxml.ZipSuffix,
		Entry:       batchxml.FileName(id),
	}, nil
}

// Persist serializes doc to its canonical location. By default failures are
// logged and nil is returned; with Options.SurfaceErrors they are returned as
// serrors.ErrConfiguration or serrors.ErrPersistence.
func (p *Persister) Persist(ctx context.Context, doc *batchxml.Document) error {
	mode, err := p.persist(ctx, doc)
	if err == nil {
		return nil
	}

	logger.Error(ctx, "could not persist batch xml",
		zap.String("mode", string(mode)),
		zap.Bool("swallowed", !p.options.SurfaceErrors),
		zap.Error(err))
	if p.options.SurfaceErrors {
		return err
	}

	return nil
}

func (p *Persister) persist(ctx context.Context, doc *batchxml.Document) (mode Mode, err error) {
	start := time.Now()
	defer func() { p.record(ctx, mode, err, time.Since(start)) }()

	target, err := TargetFor(doc)
	if err != nil {
		return modeUnknown, err
	}

	mode, err = modeFor(target)
	if err != nil {
		return modeUnknown, err
	}

	logger.Info(ctx, "persisting batch xml",
		zap.String("mode", string(mode)),
		zap.String("path", target.Path),
		zap.String("archivePath", target.ArchivePath))

	if mode == ModeArchive {
		return mode, writeArchive(target, doc)
	}

	return mode, writePlain(target, doc)
}

func modeFor(target Target) (Mode, error) {
	_, err := os.Stat(target.ArchivePath)
	switch {
	case err == nil:
		return ModeArchive, nil
	case errors.Is(err, fs.ErrNotExist):
		return ModePlain, nil
	default:
		return "", serrors.Wrap(serrors.ErrPersistence, err, "could not check for %s", target.ArchivePath)
	}
}

func writePlain(target Target, doc *batchxml.Document) error {
	return writeFile(target.Path, func(w io.Writer) error {
		_, err := doc.WriteTo(w)

		return err
	})
}

func writeArchive(target Target, doc *batchxml.Document) error {
	return writeFile(target.ArchivePath, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     target.Entry,
			Method:   zip.Deflate,
			Modified: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("could not create archive entry: %w", err)
		}
		if _, err := doc.WriteTo(entry); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("could not finish archive: %w", err)
		}

		return nil
	})
}

// resolve follows a symlink at path to the file it points to and returns the
// permission bits the replacement must carry. A missing file gets fileMode.
func resolve(path string) (string, fs.FileMode, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, fileMode, nil
	}
	if err != nil {
		return "", 0, serrors.Wrap(serrors.ErrPersistence, err, "could not resolve %s", path)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", 0, serrors.Wrap(serrors.ErrPersistence, err, "could not stat %s", resolved)
	}

	return resolved, info.Mode().Perm(), nil
}

// writeFile writes to a temporary sibling of path and renames it into place
// once the content is flushed and synced. An existing file keeps its
// permission bits; the containing directory must be writable.
func writeFile(target string, write func(w io.Writer) error) (err error) {
	path, perm, err := resolve(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not create %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not write %s", path)
	}
	if err = bw.Flush(); err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not flush %s", path)
	}
	if err = tmp.Chmod(perm); err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not chmod %s", path)
	}
	if err = tmp.Sync(); err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not sync %s", path)
	}
	if err = tmp.Close(); err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not close %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return serrors.Wrap(serrors.ErrPersistence, err, "could not replace %s", path)
	}

	return nil
}

func (p *Persister) record(ctx context.Context, mode Mode, err error, elapsed time.Duration) {
	if p.options.Instruments == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("outcome", outcome))

	p.options.Instruments.Persists.Add(ctx, 1, attrs)
	p.options.Instruments.PersistDuration.Record(ctx, elapsed.Seconds(), attrs)
}
