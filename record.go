package kummu

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/pkg/errors"
)

type imageFlag uint8

// minImageSize = flag + len + crc32
const minImageSize = 1 + 1 + 4

const (
	imageCompressed imageFlag = 1 << iota
)

// encodeImage serializes a swapped page image as
// flag | uvarint(len) | payload | crc32(raw). The payload is compressed
// only when that makes it shorter.
func encodeImage(raw []byte, compressor Compressor) []byte {
	var flag imageFlag
	payload := raw
	if compressor != nil {
		if c := compressor(raw); c != nil && len(c) < len(raw) {
			payload = c
			flag |= imageCompressed
		}
	}
	lenBuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenBuf, uint64(len(payload)))

	buf := bytes.NewBuffer(make([]byte, 0, 1+n+len(payload)+4))
	buf.WriteByte(byte(flag))
	buf.Write(lenBuf[:n])
	buf.Write(payload)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc32.ChecksumIEEE(raw))
	buf.Write(sum[:])
	return buf.Bytes()
}

func decodeImage(data []byte, decompressor DeCompressor) ([]byte, error) {
	if len(data) < minImageSize {
		return nil, errors.Wrapf(ErrSwapCorrupt, "image of %d bytes is shorter than %d", len(data), minImageSize)
	}
	reader := bytes.NewReader(data)
	_flag, _ := reader.ReadByte()
	flag := imageFlag(_flag)
	if flag&imageCompressed != 0 && decompressor == nil {
		return nil, errors.Wrap(ErrSwapCorrupt, "image is compressed but decompressor is nil")
	}
	n, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, errors.Wrap(ErrSwapCorrupt, "failed to read payload length")
	}
	if n+4 != uint64(reader.Len()) {
		return nil, errors.Wrapf(ErrSwapCorrupt, "payload length %d does not match %d remaining bytes", n, reader.Len())
	}
	payload := make([]byte, n)
	if _, err = reader.Read(payload); err != nil {
		return nil, errors.Wrap(err, "failed to read payload")
	}
	var sum [4]byte
	if _, err = reader.Read(sum[:]); err != nil {
		return nil, errors.Wrap(err, "failed to read checksum")
	}

	raw := payload
	if flag&imageCompressed != 0 {
		raw, err = decompressor(payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decompress image")
		}
	}
	if crc32.ChecksumIEEE(raw) != binary.BigEndian.Uint32(sum[:]) {
		return nil, errors.Wrap(ErrSwapCorrupt, "checksum mismatch")
	}
	return raw, nil
}
