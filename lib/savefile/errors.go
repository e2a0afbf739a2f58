package savefile

import "errors"

var (
	ErrLayout     = errors.New("savefile: invalid layout")
	ErrHeader     = errors.New("savefile: invalid header")
	ErrDecompress = errors.New("savefile: failed to decompress")
	ErrCompress   = errors.New("savefile: failed to compress")
	ErrNoWrapper  = errors.New("savefile: no compression wrapper to reuse")
)
