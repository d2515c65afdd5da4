package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mlvaren/tonic/internal/modules/engine/application/usecases"
	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/dsp"
	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/mp3src"
	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/settings"
)

var (
	playSettingsPath string
	playOutPath      string
	playPreset       string
	playSpeed        float64
	playPitch        float64
	playPitchLock    bool
	playVolume       float64
)

var playCmd = &cobra.Command{
	Use:   "play <file.mp3>",
	Short: "Render an MP3 through the signal chain as raw PCM",
	Long: `Decodes an MP3 file and renders it through the full signal chain
(equalizer, compressor, reverb, panner, master gain). The output is 16-bit
little-endian stereo PCM, suitable for piping into aplay or sox:

  tonic play song.mp3 | aplay -f S16_LE -r 44100 -c 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := mp3src.DecodeFile(args[0])
		if err != nil {
			return err
		}

		var sink dsp.Sink
		switch playOutPath {
		case "-":
			sink = dsp.WriterSink{W: os.Stdout}
		case "":
			sink = dsp.NullSink{SampleRate: src.SampleRate()}
		default:
			f, err := os.Create(playOutPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			sink = dsp.WriterSink{W: f}
		}

		backend := dsp.NewBackend(sink)
		graph := usecases.NewGraphService(backend)

		loaded, err := settings.NewStore(playSettingsPath).Load()
		if err != nil {
			return fmt.Errorf("failed to load audio settings: %w", err)
		}
		graph.ApplySettings(loaded)

		if playPreset != "" {
			if err := graph.ApplyPreset(playPreset); err != nil {
				return err
			}
		}
		graph.SetSpeed(playSpeed)
		graph.SetPitchShift(playPitch)
		graph.SetPitchLocked(playPitchLock)
		graph.SetMasterVolume(playVolume, 0)

		if err := graph.Initialize(cmd.Context(), src); err != nil {
			return err
		}
		defer graph.Teardown()

		done := backend.LastChain().Done()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case <-done:
		case <-sig:
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringVar(&playSettingsPath, "settings", "audio.yaml", "path to the audio settings file")
	playCmd.Flags().StringVar(&playOutPath, "out", "-", "PCM output path, - for stdout, empty to discard in real time")
	playCmd.Flags().StringVar(&playPreset, "preset", "", "equalizer preset to apply")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 1, "playback speed")
	playCmd.Flags().Float64Var(&playPitch, "pitch", 0, "pitch shift in semitones")
	playCmd.Flags().BoolVar(&playPitchLock, "pitch-lock", false, "lock pitch while changing speed")
	playCmd.Flags().Float64Var(&playVolume, "volume", 1, "master volume in [0, 1]")
}
