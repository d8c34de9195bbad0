package audio_wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/wav"
)

// Metadata represents the LIST/INFO tags and format details of a wav file.
type Metadata struct {
	Artist       string
	Comments     string
	Copyright    string
	CreationDate string
	Genre        string
	Title        string
	Product      string // 专辑 (IPRD)
	Software     string

	SampleRate      uint32
	Channels        uint16
	BitsPerSample   uint16
	DurationSeconds float64
}

var (
	ErrNotWave       = errors.New("not a RIFF/WAVE payload")
	ErrChunkOverflow = errors.New("wav chunk exceeds payload")
)

const chunkHeaderSize = 8

// layout 为校验后的块信息
type layout struct {
	byteRate uint32
	dataSize uint32
}

// ReadMetadata 解析内存中的 wav 字节，读取 fmt 与 LIST/INFO 块
// 块声明长度必须落在 data 范围内，否则直接返回错误
func ReadMetadata(data []byte) (*Metadata, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWave
	}
	chunks, err := walkChunks(data)
	if err != nil {
		return nil, err
	}

	d := wav.NewDecoder(bytes.NewReader(data))
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("read wav header: %w", err)
	}
	if d.NumChans == 0 || d.SampleRate == 0 {
		return nil, ErrNotWave
	}

	meta := &Metadata{
		SampleRate:    d.SampleRate,
		Channels:      d.NumChans,
		BitsPerSample: d.BitDepth,
	}
	if chunks.byteRate > 0 {
		meta.DurationSeconds = float64(chunks.dataSize) / float64(chunks.byteRate)
	}

	// INFO 块缺失时只返回格式信息
	d.ReadMetadata()
	if d.Metadata == nil {
		return meta, nil
	}
	meta.Artist = d.Metadata.Artist
	meta.Comments = d.Metadata.Comments
	meta.Copyright = d.Metadata.Copyright
	meta.CreationDate = d.Metadata.CreationDate
	meta.Genre = d.Metadata.Genre
	meta.Title = d.Metadata.Title
	meta.Product = d.Metadata.Product
	meta.Software = d.Metadata.Software
	return meta, nil
}

// walkChunks 逐块校验 RIFF 结构，LIST 块内的子块同样校验
func walkChunks(data []byte) (layout, error) {
	var out layout
	var sawFmt bool

	riffSize := int(binary.LittleEndian.Uint32(data[4:8]))
	if riffSize < 4 {
		return out, ErrNotWave
	}
	if riffSize > len(data)-chunkHeaderSize {
		return out, fmt.Errorf("RIFF size %d: %w", riffSize, ErrChunkOverflow)
	}

	err := eachChunk(data[12:chunkHeaderSize+riffSize], func(id string, body []byte) error {
		switch id {
		case "fmt ":
			if len(body) < 16 {
				return fmt.Errorf("fmt chunk too short: %d bytes", len(body))
			}
			out.byteRate = binary.LittleEndian.Uint32(body[8:12])
			sawFmt = true
		case "data":
			out.dataSize = uint32(len(body))
		case "LIST":
			if len(body) >= 4 {
				return eachChunk(body[4:], func(string, []byte) error { return nil })
			}
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	if !sawFmt {
		return out, fmt.Errorf("missing fmt chunk: %w", ErrNotWave)
	}
	return out, nil
}

func eachChunk(buf []byte, visit func(id string, body []byte) error) error {
	offset := 0
	for offset+chunkHeaderSize <= len(buf) {
		id := string(buf[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(buf[offset+4 : offset+8]))
		start := offset + chunkHeaderSize
		if size > len(buf)-start {
			return fmt.Errorf("chunk %q size %d: %w", id, size, ErrChunkOverflow)
		}
		if err := visit(id, buf[start:start+size]); err != nil {
			return err
		}
		// 块按偶数字节对齐
		offset = start + size + size&1
	}
	return nil
}
