package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/majordome-ai/majordome/internal/voice"
)

var fingerprintConfidence float64

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <text>",
	Short: "Derive a heuristic speaker pseudo-identity from an utterance",
	Long: `Fingerprint computes the toy speaker checksum used to tag voice
transcription segments, plus the music-detection flag. It is not a
biometric identifier.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		fp := voice.EstimateFingerprint(text, fingerprintConfidence)
		out := map[string]interface{}{
			"speaker_id":       fp.SpeakerID,
			"pattern_hash":     fp.PatternHash,
			"confidence_score": fp.ConfidenceScore,
			"timestamp":        fp.Timestamp,
			"music_detected":   voice.DetectMusic(text),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	fingerprintCmd.Flags().Float64Var(&fingerprintConfidence, "confidence", 1.0, "recognition confidence in [0,1]")
}
