package storage

import "errors"

var (
	ErrNotFound   = errors.New("storage: save file not found")
	ErrEmptyFile  = errors.New("storage: save file is empty")
	ErrShortWrite = errors.New("storage: short write")
	ErrShortRead  = errors.New("storage: short read")
	ErrNotOpen    = errors.New("storage: no open file")
	ErrTooLarge   = errors.New("storage: save file exceeds size limit")
)
