// Command colourize decodes an MP3 file, runs it through the colourizer
// engine, and plays the result on the default audio device.
//
// Usage:
//
//	colourize [flags] input.mp3
//
// Examples:
//
//	colourize song.mp3
//	colourize -mode mono -mix 0.5 song.mp3
//	colourize -bank -notes c,e,g song.mp3
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"

	"github.com/SuzukiDaishi/colourizer-go/colourizer"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
)

// go-mp3 always yields signed 16-bit little-endian stereo.
const (
	channelCount   = 2
	bytesPerFrame  = channelCount * 2
	framesPerChunk = 4096
)

func main() {
	modeName := flag.String("mode", "multi", "processing mode: mono or multi")
	mix := flag.Float64("mix", 1.0, "dry/wet blend in [0, 1]")
	gain := flag.Float64("gain", 1.0, "post-filter linear gain")
	freq := flag.Float64("freq", 440, "peaking filter center frequency in Hz")
	q := flag.Float64("q", 100, "peaking filter quality factor")
	peakGain := flag.Float64("peakgain", 20, "peaking filter gain in dB")
	useBank := flag.Bool("bank", false, "use the per-note filter bank instead of a single peak")
	notes := flag.String("notes", "", "comma-separated audible notes for -bank (default Miyako-bushi)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: colourize [flags] input.mp3")
		flag.PrintDefaults()
		os.Exit(2)
	}

	err := run(flag.Arg(0), *modeName, *mix, *gain, *freq, *q, *peakGain, *useBank, *notes)
	if err != nil {
		log.Fatal(err)
	}
}

func run(path, modeName string, mix, gain, freq, q, peakGain float64, useBank bool, notes string) error {
	mode, err := colourizer.ParseProcessingMode(modeName)
	if err != nil {
		return err
	}

	opts := []colourizer.Option{
		colourizer.WithMode(mode),
		colourizer.WithMix(mix),
		colourizer.WithGain(gain),
		colourizer.WithFilterFrequency(freq),
		colourizer.WithFilterQ(q),
		colourizer.WithFilterGainDB(peakGain),
		colourizer.WithMaxBlockSize(framesPerChunk),
	}

	if useBank {
		gains, err := parseNoteList(notes)
		if err != nil {
			return err
		}
		opts = append(opts, colourizer.WithNoteBank(gains))
	}

	engine, err := colourizer.NewEngine(opts...)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	sampleRate := decoder.SampleRate()
	err = engine.Configure(float64(sampleRate), channelCount)
	if err != nil {
		return err
	}

	log.Printf("playing %s: %d Hz, %d channels, mode=%s mix=%.2f gain=%.2f",
		path, sampleRate, channelCount, mode, mix, gain)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(newColourizeReader(decoder, engine))
	player.Play()

	for player.IsPlaying() {
		time.Sleep(100 * time.Millisecond)
	}

	return player.Close()
}

func parseNoteList(notes string) ([filterbank.NoteCount]float64, error) {
	if strings.TrimSpace(notes) == "" {
		return filterbank.MiyakoBushi, nil
	}

	var gains [filterbank.NoteCount]float64
	for _, name := range strings.Split(notes, ",") {
		class, err := filterbank.ParseNote(strings.TrimSpace(name))
		if err != nil {
			return gains, err
		}
		gains[class] = 1
	}

	return gains, nil
}

// colourizeReader pulls decoded PCM, colourizes it block by block, and
// serves the processed bytes to the audio device.
type colourizeReader struct {
	src    io.Reader
	engine *colourizer.Engine

	pcm   []byte      // raw frames pulled from the decoder
	block [][]float64 // planar processing block
	out   []byte      // processed frames awaiting the player
}

func newColourizeReader(src io.Reader, engine *colourizer.Engine) *colourizeReader {
	block := make([][]float64, channelCount)
	for c := range block {
		block[c] = make([]float64, framesPerChunk)
	}

	return &colourizeReader{
		src:    src,
		engine: engine,
		pcm:    make([]byte, framesPerChunk*bytesPerFrame),
		block:  block,
	}
}

func (r *colourizeReader) Read(p []byte) (int, error) {
	if len(r.out) == 0 {
		err := r.fill()
		if err != nil {
			return 0, err
		}
	}

	n := copy(p, r.out)
	r.out = r.out[n:]

	return n, nil
}

func (r *colourizeReader) fill() error {
	n, err := io.ReadAtLeast(r.src, r.pcm, bytesPerFrame)
	if err != nil {
		return err
	}

	frames := n / bytesPerFrame
	for c := 0; c < channelCount; c++ {
		r.block[c] = r.block[c][:frames]
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channelCount; c++ {
			s := int16(binary.LittleEndian.Uint16(r.pcm[(i*channelCount+c)*2:]))
			r.block[c][i] = float64(s) / 32768
		}
	}

	err = r.engine.Process(r.block)
	if err != nil {
		return err
	}

	buf := r.pcm[:frames*bytesPerFrame]
	for i := 0; i < frames; i++ {
		for c := 0; c < channelCount; c++ {
			v := r.block[c][i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			binary.LittleEndian.PutUint16(buf[(i*channelCount+c)*2:], uint16(int16(v*32767)))
		}
	}
	r.out = buf

	return nil
}
