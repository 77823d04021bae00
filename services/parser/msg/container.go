package msg

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/richardlehane/mscfb"

	mperrors "github.com/customeros/mailpdf/internal/errors"
)

const rootEntryName = "Root Entry"

// Streams holds every stream of an OLE compound file keyed by its storage
// path, e.g. "__attach_version1.0_#00000000/__substg1.0_37010102".
type Streams map[string][]byte

func readContainer(data []byte) (Streams, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(mperrors.ErrInvalidMessage, err.Error())
	}

	streams := make(Streams)
	for entry, err := doc.Next(); ; entry, err = doc.Next() {
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(mperrors.ErrInvalidMessage, err.Error())
		}
		if entry.FileInfo().IsDir() {
			continue
		}
		content, err := io.ReadAll(entry)
		if err != nil {
			return nil, errors.Wrapf(mperrors.ErrInvalidMessage, "read stream %s: %v", entry.Name, err)
		}
		streams[streamPath(entry.Path, entry.Name)] = content
	}

	if len(streams) == 0 {
		return nil, errors.Wrap(mperrors.ErrInvalidMessage, "compound file has no streams")
	}
	return streams, nil
}

func streamPath(parents []string, name string) string {
	if len(parents) > 0 && parents[0] == rootEntryName {
		parents = parents[1:]
	}
	return strings.Join(append(append([]string{}, parents...), name), "/")
}

// Storages returns the sorted, distinct top-level storage names that start
// with prefix.
func (s Streams) Storages(prefix string) []string {
	seen := make(map[string]struct{})
	var names []string
	for path := range s {
		storage, _, ok := strings.Cut(path, "/")
		if !ok || !strings.HasPrefix(storage, prefix) {
			continue
		}
		if _, dup := seen[storage]; dup {
			continue
		}
		seen[storage] = struct{}{}
		names = append(names, storage)
	}
	// storage names carry fixed width hex indexes, so lexical order is index order
	sort.Strings(names)
	return names
}

// Sub returns the streams below storage with the storage prefix removed.
func (s Streams) Sub(storage string) Streams {
	sub := make(Streams)
	prefix := storage + "/"
	for path, content := range s {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			sub[rest] = content
		}
	}
	return sub
}
