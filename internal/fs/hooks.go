package fs

import (
	"errors"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Hooks used for testing (overridable)
var (
	open       = os.Open
	readFile   = mmapReadFile
	stat       = os.Stat
	chmod      = os.Chmod
	remove     = os.Remove
	rename     = os.Rename
	createTemp = os.CreateTemp
	mkdirAll   = os.MkdirAll
	isNotExist = os.IsNotExist
)

// mmapReadFile reads a whole file through a read-only mapping.
func mmapReadFile(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if len(data) == 0 {
		return data, nil
	}
	if _, err := r.ReadAt(data, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data, nil
}

// getters and setters for test override
func GetOpen() func(string) (*os.File, error)     { return open }
func SetOpen(f func(string) (*os.File, error))    { open = f }
func GetReadFile() func(string) ([]byte, error)   { return readFile }
func SetReadFile(f func(string) ([]byte, error))  { readFile = f }
func GetStat() func(string) (os.FileInfo, error)  { return stat }
func SetStat(f func(string) (os.FileInfo, error)) { stat = f }
func GetRename() func(string, string) error       { return rename }
func SetRename(f func(string, string) error)      { rename = f }
func GetIsNotExist() func(error) bool             { return isNotExist }
func SetIsNotExist(f func(error) bool)            { isNotExist = f }
