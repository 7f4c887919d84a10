// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package ioutil

import (
	"os"
	"path/filepath"
)

// AtomicFile is a file that only appears at its destination once it has been completely written. Data is written to
// a temporary file in the destination directory, which Close renames into place.
type AtomicFile struct {
	*os.File
	path string
	done bool
}

// CreateAtomic starts writing a file that will replace path on Close.
func CreateAtomic(path string) (*AtomicFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err != nil {
		return nil, err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &AtomicFile{File: tmp, path: path}, nil
}

// Close closes the temporary file and renames it to the destination path. The temporary file is removed if either
// step fails.
func (f *AtomicFile) Close() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	if err := os.Rename(f.File.Name(), f.path); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	return nil
}

// Abort discards everything written and leaves the destination untouched.
func (f *AtomicFile) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	f.File.Close()
	return os.Remove(f.File.Name())
}

// AtomicWriteFile atomically writes data to filename.
func AtomicWriteFile(filename string, data []byte) error {
	f, err := CreateAtomic(filename)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
