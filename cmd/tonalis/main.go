// Command tonalis analyzes audio files for tempo and musical key.
//
// Each input file is decoded to mono PCM via ffmpeg, run through the tempo
// and key estimators, and reported as text or JSON. Low confidence is
// reported as "undetected", never as a failure; the exit code reflects I/O
// problems only.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dhowden/tag"

	"github.com/tonalab/tonalis/analyzer"
	"github.com/tonalab/tonalis/config"
	"github.com/tonalab/tonalis/logging"
	"github.com/tonalab/tonalis/transcode"
)

// Confidence band thresholds are presentation policy and live here, not in
// the engine.
const (
	tempoHighConfidence   = 0.7
	tempoMediumConfidence = 0.4
	keyHighConfidence     = 0.7
	keyMediumConfidence   = 0.5
)

// FileReport is one file's analysis rendered for output.
type FileReport struct {
	Path          string  `json:"path"`
	Title         string  `json:"title,omitempty"`
	Artist        string  `json:"artist,omitempty"`
	DurationSec   float64 `json:"duration_sec"`
	BPM           float32 `json:"bpm"`
	BPMConfidence float32 `json:"bpm_confidence"`
	BPMBand       string  `json:"bpm_band"`
	Key           string  `json:"key"`
	Mode          string  `json:"mode"`
	KeyConfidence float32 `json:"key_confidence"`
	KeyBand       string  `json:"key_band"`
	AnalysisMs    int64   `json:"analysis_ms"`
}

func main() {
	configPath := flag.String("config", "", "path to a config file (default: optional ./tonalis.yaml)")
	jsonOut := flag.Bool("json", false, "emit a JSON report instead of text")
	outPath := flag.String("o", "", "write the report to a file instead of stdout")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: tonalis [flags] file [file...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal(err, "invalid configuration")
	}
	if *jsonOut {
		cfg.ReportFormat = "json"
	}
	if *verbose || cfg.Verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	decoder := transcode.NewDecoder(&transcode.DecoderConfig{
		TargetSampleRate: cfg.SampleRate,
		FFmpegPath:       cfg.FFmpegPath,
		Timeout:          60 * time.Second,
	})

	a := analyzer.New()
	a.Prepare(float64(cfg.SampleRate))

	reports := make([]FileReport, 0, flag.NArg())
	failures := 0

	for _, path := range flag.Args() {
		report, err := analyzeFile(context.Background(), decoder, a, path)
		if err != nil {
			logging.Error(err, "analysis failed", logging.Fields{"path": path})
			failures++
			continue
		}
		reports = append(reports, report)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			logging.Fatal(err, "cannot create output file")
		}
		defer f.Close()
		out = f
	}

	if cfg.ReportFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			logging.Fatal(err, "cannot write report")
		}
	} else {
		for _, report := range reports {
			renderText(out, report)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func analyzeFile(ctx context.Context, decoder *transcode.Decoder, a *analyzer.Analyzer, path string) (FileReport, error) {
	audio, err := decoder.DecodeFile(ctx, path)
	if err != nil {
		return FileReport{}, err
	}

	start := time.Now()
	result := a.Analyze(audio.PCM)
	elapsed := time.Since(start)

	report := FileReport{
		Path:          path,
		DurationSec:   audio.Duration.Seconds(),
		BPM:           result.BPM,
		BPMConfidence: result.BPMConfidence,
		BPMBand:       tempoBand(result.BPMConfidence),
		Key:           result.Key,
		Mode:          result.Mode,
		KeyConfidence: result.KeyConfidence,
		KeyBand:       keyBand(result.KeyConfidence),
		AnalysisMs:    elapsed.Milliseconds(),
	}

	report.Title, report.Artist = readTags(path)

	return report, nil
}

// readTags pulls title and artist from the file's embedded metadata when the
// container carries any; files without tags are common and not an error.
func readTags(path string) (title, artist string) {
	f, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", ""
	}
	return meta.Title(), meta.Artist()
}

func renderText(out *os.File, report FileReport) {
	fmt.Fprintf(out, "%s\n", report.Path)
	if report.Title != "" || report.Artist != "" {
		fmt.Fprintf(out, "  %s - %s\n", report.Artist, report.Title)
	}
	fmt.Fprintf(out, "  duration: %.1fs\n", report.DurationSec)

	if report.BPMBand == "low" || report.BPM == 0 {
		fmt.Fprintf(out, "  tempo: undetected (confidence %.2f)\n", report.BPMConfidence)
	} else {
		fmt.Fprintf(out, "  tempo: %.1f BPM (%s confidence, %.2f)\n", report.BPM, report.BPMBand, report.BPMConfidence)
	}

	if report.KeyBand == "low" {
		fmt.Fprintf(out, "  key: undetected (confidence %.2f)\n", report.KeyConfidence)
	} else {
		fmt.Fprintf(out, "  key: %s %s (%s confidence, %.2f)\n", report.Key, report.Mode, report.KeyBand, report.KeyConfidence)
	}
}

func tempoBand(confidence float32) string {
	switch {
	case confidence >= tempoHighConfidence:
		return "high"
	case confidence >= tempoMediumConfidence:
		return "medium"
	default:
		return "low"
	}
}

func keyBand(confidence float32) string {
	switch {
	case confidence >= keyHighConfidence:
		return "high"
	case confidence >= keyMediumConfidence:
		return "medium"
	default:
		return "low"
	}
}
