package audio_wav

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	if len(body)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func fmtChunk(channels uint16, sampleRate uint32, bits uint16) []byte {
	var body bytes.Buffer
	blockAlign := channels * bits / 8
	_ = binary.Write(&body, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&body, binary.LittleEndian, channels)
	_ = binary.Write(&body, binary.LittleEndian, sampleRate)
	_ = binary.Write(&body, binary.LittleEndian, sampleRate*uint32(blockAlign))
	_ = binary.Write(&body, binary.LittleEndian, blockAlign)
	_ = binary.Write(&body, binary.LittleEndian, bits)
	return chunk("fmt ", body.Bytes())
}

// buildWave 构造一个带 INFO 标签的 PCM wav
func buildWave(title, artist string, seconds int) []byte {
	var info bytes.Buffer
	info.WriteString("INFO")
	info.Write(chunk("INAM", []byte(title)))
	info.Write(chunk("IART", []byte(artist)))

	var body bytes.Buffer
	body.WriteString("WAVE")
	body.Write(fmtChunk(1, 8000, 16))
	body.Write(chunk("LIST", info.Bytes()))
	body.Write(chunk("data", make([]byte, 16000*seconds)))

	return chunk("RIFF", body.Bytes())
}

func TestReadMetadata(t *testing.T) {
	meta, err := ReadMetadata(buildWave("Tide", "Mira", 2))
	require.NoError(t, err)

	assert.Equal(t, "Tide", meta.Title)
	assert.Equal(t, "Mira", meta.Artist)
	assert.Equal(t, uint32(8000), meta.SampleRate)
	assert.Equal(t, uint16(1), meta.Channels)
	assert.Equal(t, uint16(16), meta.BitsPerSample)
	assert.InDelta(t, 2.0, meta.DurationSeconds, 0.0001)
}

func TestReadMetadata_NotWave(t *testing.T) {
	_, err := ReadMetadata([]byte("ID3\x04\x00 definitely not riff"))
	assert.ErrorIs(t, err, ErrNotWave)

	_, err = ReadMetadata(nil)
	assert.ErrorIs(t, err, ErrNotWave)
}

func TestReadMetadata_WithoutInfo(t *testing.T) {
	var body bytes.Buffer
	body.WriteString("WAVE")
	body.Write(fmtChunk(2, 8000, 16))
	body.Write(chunk("data", make([]byte, 32000)))

	meta, err := ReadMetadata(chunk("RIFF", body.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Equal(t, uint16(2), meta.Channels)
	assert.InDelta(t, 1.0, meta.DurationSeconds, 0.0001)
}

// declaredChunk 写入声明长度与实际内容不一致的块
func declaredChunk(id string, declared uint32, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	_ = binary.Write(&buf, binary.LittleEndian, declared)
	buf.Write(body)
	return buf.Bytes()
}

func oversizedInfoWave(listSize, nameSize uint32) []byte {
	var info bytes.Buffer
	info.WriteString("INFO")
	info.Write(declaredChunk("INAM", nameSize, []byte("Tide")))

	var body bytes.Buffer
	body.WriteString("WAVE")
	body.Write(fmtChunk(1, 8000, 16))
	body.Write(declaredChunk("LIST", listSize, info.Bytes()))

	return chunk("RIFF", body.Bytes())
}

func TestReadMetadata_ChunkSizeBeyondPayload(t *testing.T) {
	cases := map[string][]byte{
		"list":     oversizedInfoWave(0x7FFFFFF0, 0x7FFFFF00),
		"info tag": oversizedInfoWave(16, 0x7FFFFF00),
		"data": chunk("RIFF", append(append([]byte("WAVE"), fmtChunk(1, 8000, 16)...),
			declaredChunk("data", 1<<30, make([]byte, 64))...)),
	}

	for name, wave := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Less(t, len(wave), 200)
			meta, err := ReadMetadata(wave)
			assert.ErrorIs(t, err, ErrChunkOverflow)
			assert.Nil(t, meta)
		})
	}
}

func TestReadMetadata_RiffSizeBeyondPayload(t *testing.T) {
	wave := buildWave("Tide", "Mira", 1)
	binary.LittleEndian.PutUint32(wave[4:8], 0xFFFFFFF0)

	_, err := ReadMetadata(wave)
	assert.ErrorIs(t, err, ErrChunkOverflow)

	binary.LittleEndian.PutUint32(wave[4:8], 2)
	_, err = ReadMetadata(wave)
	assert.ErrorIs(t, err, ErrNotWave)
}

func TestReadMetadata_MissingFmt(t *testing.T) {
	var body bytes.Buffer
	body.WriteString("WAVE")
	body.Write(chunk("data", make([]byte, 16)))

	_, err := ReadMetadata(chunk("RIFF", body.Bytes()))
	assert.ErrorIs(t, err, ErrNotWave)
}
