// The MIT License (MIT)
//
// # Copyright (c) 2024 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command rlnc-demo drives an in-memory encode -> lossy channel -> (optional
// recode) -> decode pipeline, to exercise the rlnc package end to end. It is
// not part of the coding engine: the engine is purely in-memory and
// synchronous, and has no notion of a channel or a CLI.
package main

import (
	"crypto/rand"
	"log"
	mrand "math/rand/v2"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/xtaci/rlnc"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "rlnc-demo"
	myApp.Usage = "exercise the rlnc encoder/recoder/decoder over a simulated lossy channel"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "size",
			Value: 10240,
			Usage: "size in bytes of the random payload to encode",
		},
		cli.IntFlag{
			Name:  "pieces,k",
			Value: 32,
			Usage: "number of pieces K to split the payload into",
		},
		cli.Float64Flag{
			Name:  "loss",
			Value: 0.2,
			Usage: "fraction of coded pieces dropped before reaching the decoder",
		},
		cli.BoolFlag{
			Name:  "recode",
			Usage: "route surviving pieces through a recoder before decoding",
		},
	}
	myApp.Action = runDemo
	if err := myApp.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func runDemo(c *cli.Context) error {
	size := c.Int("size")
	pieceCount := c.Int("pieces")
	loss := c.Float64("loss")
	withRecode := c.Bool("recode")

	payload := make([]byte, size)
	if _, err := rand.Read(payload); err != nil {
		return errors.Wrap(err, "rand.Read(payload)")
	}

	encoder, err := rlnc.NewEncoder(payload, pieceCount)
	if err != nil {
		return errors.Wrap(err, "rlnc.NewEncoder")
	}

	decoder, err := rlnc.NewDecoder(encoder.PieceByteLen(), encoder.PieceCount())
	if err != nil {
		return errors.Wrap(err, "rlnc.NewDecoder")
	}

	var survivors [][]byte
	sent := 0
	for !decoder.IsAlreadyDecoded() && sent < pieceCount*50 {
		piece, err := encoder.Code(rand.Reader)
		if err != nil {
			return errors.Wrap(err, "encoder.Code")
		}
		sent++
		if pseudoRandomFloat() < loss {
			continue
		}
		survivors = append(survivors, piece)
	}

	var recoderSrc []byte
	for _, p := range survivors {
		recoderSrc = append(recoderSrc, p...)
	}

	deliver := survivors
	if withRecode && len(recoderSrc) > 0 {
		recoder, err := rlnc.NewRecoder(recoderSrc, encoder.FullCodedPieceByteLen(), encoder.PieceCount())
		if err != nil {
			return errors.Wrap(err, "rlnc.NewRecoder")
		}
		deliver = deliver[:0]
		for i := 0; i < len(survivors); i++ {
			piece, err := recoder.Recode(rand.Reader)
			if err != nil {
				return errors.Wrap(err, "recoder.Recode")
			}
			deliver = append(deliver, piece)
		}
	}

	for _, piece := range deliver {
		if err := decoder.Decode(piece); err != nil {
			if errors.Is(err, rlnc.ErrPieceNotUseful) || errors.Is(err, rlnc.ErrReceivedAllPieces) {
				continue
			}
			return errors.Wrap(err, "decoder.Decode")
		}
	}

	if !decoder.IsAlreadyDecoded() {
		log.Printf("decode incomplete: %d/%d useful pieces received", decoder.UsefulCount(), decoder.PieceCount())
		return nil
	}

	decoded, err := decoder.GetDecodedData()
	if err != nil {
		return errors.Wrap(err, "decoder.GetDecodedData")
	}

	if len(decoded) != len(payload) {
		log.Printf("length mismatch: got %d want %d", len(decoded), len(payload))
		return nil
	}
	for i := range decoded {
		if decoded[i] != payload[i] {
			log.Printf("byte mismatch at offset %d", i)
			return nil
		}
	}

	log.Printf("round trip ok: %d bytes, K=%d, level=%s, received=%d useful=%d",
		len(payload), pieceCount, rlnc.DetectedLevel(), decoder.ReceivedCount(), decoder.UsefulCount())
	return nil
}

func pseudoRandomFloat() float64 {
	return mrand.Float64()
}
