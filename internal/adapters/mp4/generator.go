package mp4

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/hailam/randfiles/internal/adapters/factory"
	"github.com/hailam/randfiles/internal/ports"
	"github.com/hailam/randfiles/internal/utils"
)

func init() {
	gen := New()
	factory.RegisterGenerator(ports.FileTypeMP4, gen)
	factory.RegisterGenerator(ports.FileTypeM4V, gen)
}

// Annex B parameter sets for a 128x96 baseline-profile stream.
var (
	sps = []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x0a, 0xf8, 0x41, 0xa2}
	pps = []byte{0x00, 0x00, 0x00, 0x01, 0x68, 0xce, 0x38, 0x80}
)

const (
	widthMB  = 128 / 16
	heightMB = 96 / 16
)

var (
	sliceHeader      = []byte{0x00, 0x00, 0x00, 0x01, 0x05, 0x88, 0x84, 0x21, 0xa0}
	macroblockHeader = []byte{0x0d, 0x00}
)

// frame returns one uncompressed (PCM macroblock) IDR frame with the
// parameter sets in front.
func frame() []byte {
	buf := &bytes.Buffer{}
	buf.Write(sps)
	buf.Write(pps)
	buf.Write(sliceHeader)
	mb := make([]byte, 16*16+2*8*8)
	for i := 0; i < widthMB*heightMB; i++ {
		buf.Write(macroblockHeader)
		buf.Write(mb)
	}
	buf.WriteByte(0x80)
	return buf.Bytes()
}

const (
	timescale     = 90000
	frameDuration = timescale / 30
)

// movieHeader encodes ftyp and moov for a progressive file with one AVC
// track holding a single sample of sampleSize bytes at chunkOffset. The
// encoded length does not depend on either value.
func movieHeader(sampleSize, chunkOffset uint32) ([]byte, error) {
	moov := mp4.NewMoovBox()
	mvhd := mp4.CreateMvhd()
	mvhd.Timescale = timescale
	mvhd.Duration = frameDuration
	moov.AddChild(mvhd)

	const tid = 1
	trak := mp4.CreateEmptyTrak(tid, timescale, "video", "und")
	moov.AddChild(trak)
	// avcC carries the parameter sets without start codes.
	if err := trak.SetAVCDescriptor("avc1", [][]byte{sps[4:]}, [][]byte{pps[4:]}, true); err != nil {
		return nil, fmt.Errorf("avc descriptor: %w", err)
	}
	trak.Tkhd.Duration = frameDuration
	trak.Mdia.Mdhd.Duration = frameDuration

	stbl := trak.Mdia.Minf.Stbl
	stbl.Stts.SampleCount = []uint32{1}
	stbl.Stts.SampleTimeDelta = []uint32{frameDuration}
	if err := stbl.Stsc.AddEntry(1, 1, 1); err != nil {
		return nil, fmt.Errorf("stsc: %w", err)
	}
	stbl.Stsz.SampleNumber = 1
	stbl.Stsz.SampleSize = []uint32{sampleSize}
	stbl.Stco.ChunkOffset = []uint32{chunkOffset}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}
	if err := moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}
	return buf.Bytes(), nil
}

// mdatHeader returns the box header for an mdat of total size boxSize,
// switching to the 64-bit largesize form when needed.
func mdatHeader(boxSize int64) []byte {
	if boxSize <= math.MaxUint32 {
		hdr := make([]byte, 8)
		binary.BigEndian.PutUint32(hdr[0:4], uint32(boxSize))
		copy(hdr[4:8], "mdat")
		return hdr
	}
	hdr := make([]byte, 16)
	binary.BigEndian.PutUint32(hdr[0:4], 1)
	copy(hdr[4:8], "mdat")
	binary.BigEndian.PutUint64(hdr[8:16], uint64(boxSize))
	return hdr
}

// MinSize is the smallest file Generate can produce.
func MinSize() (int64, error) {
	h264 := frame()
	head, err := movieHeader(uint32(len(h264)), 0)
	if err != nil {
		return 0, err
	}
	return int64(len(head)) + 8 + int64(len(h264)), nil
}

type Mp4Generator struct{}

func New() ports.FileGenerator {
	return &Mp4Generator{}
}

// Generate writes a progressive MP4 holding one H.264 frame, with the mdat
// box zero-padded so the file is exactly targetSize bytes.
func (g *Mp4Generator) Generate(path string, targetSize int64) error {
	h264 := frame()
	head, err := movieHeader(uint32(len(h264)), 0)
	if err != nil {
		return err
	}
	mdatSize := targetSize - int64(len(head))
	hdr := mdatHeader(mdatSize)
	if mdatSize < int64(len(hdr)+len(h264)) {
		return fmt.Errorf("size %d too small: need at least %d", targetSize, int64(len(head)+8+len(h264)))
	}
	// The frame sits right after the mdat header.
	head, err = movieHeader(uint32(len(h264)), uint32(len(head)+len(hdr)))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, part := range [][]byte{head, hdr, h264} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}
	if err := utils.WriteZeros(w, mdatSize-int64(len(hdr)+len(h264))); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
