package shardmap

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid shardmap configuration")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrSnapshotDecode  = errors.New("malformed snapshot")
)
