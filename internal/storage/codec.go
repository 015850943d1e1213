package storage

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func initCodec() error {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderCRC(false), zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(zstd.SpeedFastest))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	})
	return codecErr
}

// compressNucls packs an edge sequence for the nucls column.
func compressNucls(nucls string) ([]byte, error) {
	if err := initCodec(); err != nil {
		return nil, fmt.Errorf("failed to init zstd: %w", err)
	}
	return encoder.EncodeAll([]byte(nucls), nil), nil
}

func decompressNucls(blob []byte) (string, error) {
	if err := initCodec(); err != nil {
		return "", fmt.Errorf("failed to init zstd: %w", err)
	}
	raw, err := decoder.DecodeAll(blob, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decompress nucls: %w", err)
	}
	return string(raw), nil
}
