// Package store keeps benchmark results in SQLite and measures how well
// compressed textures pack under a general-purpose compressor, the way
// texture payloads are usually shipped.
package store

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error

	decoderOnce sync.Once
	decoder     *zstd.Decoder
	decoderErr  error
)

func sharedEncoder() (*zstd.Encoder, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	return encoder, encoderErr
}

func sharedDecoder() (*zstd.Decoder, error) {
	decoderOnce.Do(func() {
		decoder, decoderErr = zstd.NewReader(nil)
	})
	return decoder, decoderErr
}

// ZstdCompress compresses data in one shot.
func ZstdCompress(data []byte) ([]byte, error) {
	enc, err := sharedEncoder()
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// ZstdDecompress reverses ZstdCompress.
func ZstdDecompress(data []byte) ([]byte, error) {
	dec, err := sharedDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

// ZstdSize returns the compressed size of data.
func ZstdSize(data []byte) (int, error) {
	c, err := ZstdCompress(data)
	if err != nil {
		return 0, err
	}
	return len(c), nil
}
