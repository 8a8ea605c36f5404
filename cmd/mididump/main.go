// Command mididump decodes a raw MIDI byte stream and logs every message.
//
//	mididump -config mididump.toml -in capture.mid.raw
//
// With no -in the stream is read from stdin.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/leandrodaf/midiwire/internal/config"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/message"
	"github.com/leandrodaf/midiwire/sdk/midi"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file")
	inPath := flag.String("in", "", "Raw MIDI byte file (default stdin)")
	verify := flag.Bool("verify", false, "Re-encode every message and check it decodes to the same value (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *verify {
		cfg.Decode.Verify = true
	}

	log := cfg.Logger()

	in := io.Reader(os.Stdin)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatal("Failed to open input", log.Field().String("path", *inPath), log.Field().Error("error", err))
		}
		defer f.Close()
		in = f
	}

	if err := run(in, os.Stdout, cfg, log); err != nil {
		log.Error("mididump failed", log.Field().Error("error", err))
		os.Exit(1)
	}
}

// run decodes in, prints one line per message to out, and optionally
// verifies that every message survives an encode/decode cycle.
func run(in io.Reader, out io.Writer, cfg config.Config, log contracts.Logger) error {
	opts, err := cfg.StreamOptions(log)
	if err != nil {
		return err
	}

	msgs, err := midi.NewReader(in, opts...).ReadAll()
	for i, m := range msgs {
		fmt.Fprintf(out, "%6d  %s\n", i, m)
	}
	if err != nil {
		return fmt.Errorf("decoded %d messages before failure: %w", len(msgs), err)
	}

	log.Info("Stream decoded", log.Field().Int("messages", len(msgs)))
	if !cfg.Decode.Verify {
		return nil
	}
	return verifyRoundTrip(msgs, opts)
}

func verifyRoundTrip(msgs []message.Message, opts []contracts.StreamOption) error {
	var buf bytes.Buffer
	w := midi.NewWriter(&buf, opts...)
	for _, m := range msgs {
		if err := w.Write(m); err != nil {
			return err
		}
	}

	again, err := midi.NewReader(&buf, opts...).ReadAll()
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if len(again) != len(msgs) {
		return fmt.Errorf("verify: got %d messages back, want %d", len(again), len(msgs))
	}
	for i := range msgs {
		if again[i].String() != msgs[i].String() {
			return fmt.Errorf("verify: message %d: got %s, want %s", i, again[i], msgs[i])
		}
	}
	return nil
}
