package msg

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	rtfMagicCompressed   = 0x75465A4C // "LZFu"
	rtfMagicUncompressed = 0x414C454D // "MELA"

	rtfHeaderSize     = 16
	rtfDictionarySize = 4096
	rtfMaxRawSize     = 64 << 20
)

// rtfPrebuf seeds the LZFu dictionary before decompression (MS-OXRTFCP).
const rtfPrebuf = "{\\rtf1\\ansi\\mac\\deff0\\deftab720{\\fonttbl;}" +
	"{\\f0\\fnil \\froman \\fswiss \\fmodern \\fscript " +
	"\\fdecor MS Sans SerifSymbolArialTimes New Roman" +
	"Courier{\\colortbl\\red0\\green0\\blue0\r\n\\par " +
	"\\pard\\plain\\f0\\fs20\\b\\i\\u\\tab\\tx"

var ErrInvalidRTF = errors.New("invalid compressed rtf")

// DecompressRTF expands a PR_RTF_COMPRESSED stream. The CRC is not checked;
// Outlook and third-party writers disagree on the range it covers.
func DecompressRTF(data []byte) ([]byte, error) {
	if len(data) < rtfHeaderSize {
		return nil, ErrInvalidRTF
	}
	rawSize := int(binary.LittleEndian.Uint32(data[4:8]))
	magic := binary.LittleEndian.Uint32(data[8:12])
	payload := data[rtfHeaderSize:]

	switch magic {
	case rtfMagicUncompressed:
		if rawSize > len(payload) {
			rawSize = len(payload)
		}
		return append([]byte(nil), payload[:rawSize]...), nil
	case rtfMagicCompressed:
		if rawSize > rtfMaxRawSize {
			return nil, errors.Wrapf(ErrInvalidRTF, "declared size %d", rawSize)
		}
		return lzfuDecompress(payload, rawSize), nil
	default:
		return nil, errors.Wrapf(ErrInvalidRTF, "unknown magic %#x", magic)
	}
}

func lzfuDecompress(in []byte, rawSize int) []byte {
	var dict [rtfDictionarySize]byte
	copy(dict[:], rtfPrebuf)
	writePos := len(rtfPrebuf)

	out := make([]byte, 0, rawSize)
	emit := func(b byte) {
		out = append(out, b)
		dict[writePos] = b
		writePos = (writePos + 1) % rtfDictionarySize
	}

	pos := 0
	for pos < len(in) && len(out) < rawSize {
		flags := in[pos]
		pos++
		for bit := 0; bit < 8 && pos < len(in) && len(out) < rawSize; bit++ {
			if flags&(1<<bit) == 0 {
				emit(in[pos])
				pos++
				continue
			}
			if pos+1 >= len(in) {
				return out
			}
			ref := binary.BigEndian.Uint16(in[pos : pos+2])
			pos += 2
			offset := int(ref >> 4)
			length := int(ref&0x0F) + 2
			if offset == writePos {
				return out
			}
			for i := 0; i < length && len(out) < rawSize; i++ {
				emit(dict[(offset+i)%rtfDictionarySize])
			}
		}
	}
	return out
}
