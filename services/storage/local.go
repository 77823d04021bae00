package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/interfaces"
	mperrors "github.com/customeros/mailpdf/internal/errors"
	"github.com/customeros/mailpdf/internal/tracing"
)

// LocalStorageService keeps outputs as files in a directory.
type LocalStorageService struct {
	dir string
}

func NewLocalStorageService(dir string) (*LocalStorageService, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "create output dir %s", dir)
	}
	return &LocalStorageService{dir: dir}, nil
}

func (s *LocalStorageService) Upload(ctx context.Context, key string, data []byte, _ string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LocalStorageService.Upload")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	// write then rename so a concurrent download never sees a partial file
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "create temp output")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "write output")
	}
	if err := tmp.Close(); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "close output")
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "store output")
	}
	return nil
}

func (s *LocalStorageService) Download(ctx context.Context, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LocalStorageService.Download")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(mperrors.ErrOutputNotFound, key)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "read output")
	}
	return data, nil
}

func (s *LocalStorageService) Delete(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LocalStorageService.Delete")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "delete output")
	}
	return nil
}

func (s *LocalStorageService) List(ctx context.Context) ([]interfaces.StoredObject, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LocalStorageService.List")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "list outputs")
	}

	var objects []interfaces.StoredObject
	for _, entry := range entries {
		if entry.IsDir() || validateKey(entry.Name()) != nil || entry.Name()[0] == '.' {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		objects = append(objects, interfaces.StoredObject{
			Key:        entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return objects, nil
}
