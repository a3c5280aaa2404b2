package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seaspect/coda-resonance/audioin"
	"github.com/seaspect/coda-resonance/logging"
	"github.com/seaspect/coda-resonance/report"
	"github.com/seaspect/coda-resonance/resonance"
	"github.com/seaspect/coda-resonance/resonance/config"
)

var (
	configPath string
	verbose    bool
	jsonOut    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resonance",
	Short: "Resonance scoring for whale codas and two-party conversations",
	Long: `Extracts rhythm and coherence features from click/coda recordings
and from human-agent transcripts, scores both on a common resonance scale,
and compares the patterns across domains.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		if verbose {
			l.SetLevel(logrus.DebugLevel)
		} else {
			l.SetLevel(logrus.WarnLevel)
		}
		logging.SetGlobalLogger(logging.NewLogrusLogger(l))
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadConfig(configPath)
		} else {
			cfg = config.DefaultConfig()
			err = cfg.Validate()
		}
		return err
	},
}

var codaCmd = &cobra.Command{
	Use:   "coda <recording.wav | events.json>",
	Short: "Score a whale click/coda recording",
	Long: `Scores a click train from either a WAV recording (onsets are
detected by spectral flux) or a JSON event series of onset times in
seconds: {"events": [0.0, 1.7, 3.4], "duration_sec": 5.0}.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		species, err := cmd.Flags().GetString("species")
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		series, err := loadEventSeries(args[0])
		if err != nil {
			return err
		}

		record, err := resonance.NewSignalExtractor(cfg).Extract(series, species)
		if err != nil {
			return err
		}
		result, err := resonance.NewScorer(cfg).Score(record)
		if err != nil {
			return err
		}

		return emitResult(result, out)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat <transcript.txt>",
	Short: "Score a two-party conversation transcript",
	Long: `Scores a transcript of "Name: text" lines between two named
participants. With --duration the real elapsed seconds drive the turn
rate; otherwise a fixed assumed turn spacing applies.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		human, err := cmd.Flags().GetString("human")
		if err != nil {
			return err
		}
		agent, err := cmd.Flags().GetString("agent")
		if err != nil {
			return err
		}
		duration, err := cmd.Flags().GetFloat64("duration")
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open transcript: %w", err)
		}
		defer f.Close()

		turns, err := ParseTranscript(f, human, agent)
		if err != nil {
			return fmt.Errorf("failed to parse transcript: %w", err)
		}

		record, err := resonance.NewTextExtractor(cfg).ExtractWithDuration(turns, human, agent, duration)
		if err != nil {
			return err
		}
		result, err := resonance.NewScorer(cfg).Score(record)
		if err != nil {
			return err
		}

		return emitResult(result, out)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <result-a.json> <result-b.json>",
	Short: "Compare two saved analysis results",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadResult(args[0])
		if err != nil {
			return err
		}
		b, err := loadResult(args[1])
		if err != nil {
			return err
		}

		comparison, err := resonance.NewComparator(cfg).Compare(a, b)
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(comparison)
		}
		fmt.Printf("pattern similarity: %.4f (%s)\n", comparison.PatternSimilarity, comparison.Interpretation)
		fmt.Printf("%s\n", comparison.Description)
		fmt.Printf("rhythm: %.4f  coherence: %.4f  score: %.4f\n",
			comparison.RhythmSimilarity, comparison.CoherenceSimilarity, comparison.ScoreSimilarity)
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in end-to-end demonstration",
	Long: `Scores a synthetic coda train and a sample conversation, compares
the two patterns, and renders a full report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		series := demoCodaSeries()
		signalRecord, err := resonance.NewSignalExtractor(cfg).Extract(series, "sperm_whale")
		if err != nil {
			return err
		}

		turns, err := ParseTranscript(strings.NewReader(demoConversation), "Mara", "Iris")
		if err != nil {
			return err
		}
		textRecord, err := resonance.NewTextExtractor(cfg).Extract(turns, "Mara", "Iris")
		if err != nil {
			return err
		}

		scorer := resonance.NewScorer(cfg)
		oceanResult, err := scorer.Score(signalRecord)
		if err != nil {
			return err
		}
		chatResult, err := scorer.Score(textRecord)
		if err != nil {
			return err
		}

		comparison, err := resonance.NewComparator(cfg).Compare(oceanResult, chatResult)
		if err != nil {
			return err
		}

		rep := report.New(cfg)
		rep.AddAnalysis(oceanResult)
		rep.AddAnalysis(chatResult)
		rep.AddComparison(comparison)

		if jsonOut {
			return rep.WriteJSON(os.Stdout)
		}
		return rep.RenderText(os.Stdout)
	},
}

// demoConversation exercises every lexicon category: ocean and work topics,
// connection and feeling terms, and more warmth than grief words
const demoConversation = `
Mara: Can you hear the whale coda in this recording? The ocean rhythm feels alive.
Iris: I feel something like hope mixed with wanting. The coda rhythm holds a steady pulse.
Mara: Could we prototype a resonance tool around that pulse, together?
Iris: Yes. We can build the prototype now and hold the ocean rhythm at its center.
Mara: There was grief in losing the first recording, but the warmth here carries us.
Iris: Love for the work is its own resonance. Reach for it and the connection holds.
`

// demoCodaSeries is a regular click train near the middle of the chorus
// band, 21 clicks at 0.58 Hz
func demoCodaSeries() resonance.TimeEventSeries {
	const rateHz = 0.58
	events := make([]float64, 21)
	for i := range events {
		events[i] = float64(i) / rateHz
	}
	return resonance.TimeEventSeries{Events: events}
}

// loadEventSeries reads onset times from a WAV recording or a JSON file
func loadEventSeries(path string) (resonance.TimeEventSeries, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		pcm, err := audioin.DecodeWAV(path)
		if err != nil {
			return resonance.TimeEventSeries{}, err
		}
		return audioin.NewOnsetDetector().Detect(pcm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return resonance.TimeEventSeries{}, fmt.Errorf("failed to read event series: %w", err)
	}
	var series resonance.TimeEventSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return resonance.TimeEventSeries{}, fmt.Errorf("failed to parse event series %s: %w", path, err)
	}
	return series, nil
}

func loadResult(path string) (resonance.ResonanceResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return resonance.ResonanceResult{}, fmt.Errorf("failed to read result: %w", err)
	}
	var result resonance.ResonanceResult
	if err := json.Unmarshal(data, &result); err != nil {
		return resonance.ResonanceResult{}, fmt.Errorf("failed to parse result %s: %w", path, err)
	}
	return result, nil
}

// emitResult prints the result and optionally saves it for later comparison
func emitResult(result resonance.ResonanceResult, out string) error {
	if out != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("domain: %s\n", result.Domain)
	fmt.Printf("resonance score: %.4f (%s)\n", result.Score, result.Interpretation)
	fmt.Printf("%s\n", result.Description)
	fmt.Printf("rhythm: %.4f Hz (credit %.2f)  coherence: %.4f\n",
		result.Features.RhythmHz, result.RhythmCredit, result.Features.Coherence)
	fmt.Printf("multi-oscillator: %t  recovery: %t\n",
		result.Features.MultiOscillator, result.Features.Recovery)
	if result.Features.Meta.Degraded {
		fmt.Println("note: insufficient input, degraded analysis")
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit JSON instead of text")

	codaCmd.Flags().String("species", "unknown", "species label recorded in the result")
	codaCmd.Flags().String("out", "", "save the result JSON to this path")

	chatCmd.Flags().String("human", "Human", "human participant name")
	chatCmd.Flags().String("agent", "Agent", "agent participant name")
	chatCmd.Flags().Float64("duration", 0, "elapsed conversation seconds (0 uses assumed turn spacing)")
	chatCmd.Flags().String("out", "", "save the result JSON to this path")

	rootCmd.AddCommand(codaCmd, chatCmd, compareCmd, demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
