// Package store persists named collections as whole-file JSON arrays.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var emptyCollection = []byte("[]")

type Store struct {
	dir    string
	locker Locker
	log    zerolog.Logger
}

func New(dir string, locker Locker, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create data dir %s", dir)
	}
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &Store{dir: dir, locker: locker, log: logger}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, slug.Make(name)+".json")
}

// Init makes sure every named collection exists and holds a valid array.
func (s *Store) Init(names ...string) error {
	for _, name := range names {
		var items []json.RawMessage
		if err := s.Load(name, &items); err != nil {
			return err
		}
	}
	return nil
}

// Load decodes the collection into dst, which must be a pointer to a slice.
// A missing, empty or corrupt file is reset to an empty array and dst is
// left as an empty slice.
func (s *Store) Load(name string, dst interface{}) error {
	path := s.path(name)
	b, err := ioutil.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to read %s", path)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		reset(dst)
		return s.write(path, emptyCollection)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.Warn().Err(err).Str("file", path).Msg("corrupt collection, resetting")
		reset(dst)
		return s.write(path, emptyCollection)
	}
	return nil
}

// Version identifies the current contents of the collection file. It
// changes whenever the file is replaced, by this process or any other
// sharing the data dir. A missing file has the empty version.
func (s *Store) Version(name string) (string, error) {
	fi, err := os.Stat(s.path(name))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "unable to stat %s", name)
	}
	return fmt.Sprintf("%d-%d", fi.ModTime().UnixNano(), fi.Size()), nil
}

// Save replaces the whole collection with v.
func (s *Store) Save(name string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "unable to encode %s", name)
	}
	if bytes.Equal(b, []byte("null")) {
		b = emptyCollection
	}
	return s.write(s.path(name), b)
}

// Update runs a load-modify-save cycle while holding the collection lock.
// The collection is saved only when fn returns true.
func (s *Store) Update(ctx context.Context, name string, dst interface{}, fn func() (bool, error)) error {
	unlock, err := s.locker.Lock(ctx, name)
	if err != nil {
		return errors.Wrapf(err, "unable to lock %s", name)
	}
	defer unlock()

	if err := s.Load(name, dst); err != nil {
		return err
	}
	changed, err := fn()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.Save(name, reflect.ValueOf(dst).Elem().Interface())
}

// Lock takes the collection lock for callers that need to span more than a
// single Update, like a full job aggregation.
func (s *Store) Lock(ctx context.Context, name string) (func(), error) {
	return s.locker.Lock(ctx, name)
}

// write replaces path atomically so readers never see a partial file.
func (s *Store) write(path string, b []byte) error {
	tmp, err := ioutil.TempFile(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "unable to create temp file for %s", path)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to write %s", tmp.Name())
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to sync %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "unable to close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "unable to replace %s", path)
	}
	return nil
}

func reset(dst interface{}) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	e := v.Elem()
	if e.Kind() == reflect.Slice {
		e.Set(reflect.MakeSlice(e.Type(), 0, 0))
		return
	}
	e.Set(reflect.Zero(e.Type()))
}
