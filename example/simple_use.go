package main

import (
	"fmt"

	"github.com/leandrodaf/midiwire/internal/logger"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/message"
	"github.com/leandrodaf/midiwire/sdk/midi"
)

func main() {
	log := logger.NewStandardLogger()

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Kinds: []message.Kind{message.KindNoteOn, message.KindNoteOff, message.KindPitchWheel},
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = client.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	eventChannel := make(chan contracts.Event, 100)
	go func() {
		for event := range eventChannel {
			fields := []contracts.Field{
				log.Field().Uint64("timestamp", event.Timestamp),
				log.Field().String("kind", event.Message.Kind().String()),
			}
			if cm, ok := event.Message.(message.ChannelMessage); ok {
				fields = append(fields, log.Field().Uint8("channel", cm.ChannelNumber()))
			}
			log.Info(event.Message.String(), fields...)
		}
	}()

	client.StartCapture(eventChannel)
	defer client.Stop()

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	select {} // Run indefinitely
}
