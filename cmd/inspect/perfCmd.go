package inspect

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/ValentinKolb/dSav/cmd/util"
	"github.com/ValentinKolb/dSav/lib/savefile"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	PerfCmd = &cobra.Command{
		Use:   "perf [file]",
		Short: "Measures parse and serialize performance for a save file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPerf,
	}
	perfPercentiles = []float64{0.5, 0.95, 0.99}
)

// perfResult is the outcome of one measured operation
type perfResult struct {
	bench testing.BenchmarkResult
	timer gometrics.Timer
}

func runPerf(_ *cobra.Command, args []string) error {
	conf := util.GetEditorConfig()
	iterations := viper.GetInt("iterations")
	if iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", iterations)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	opts := conf.ToOptions()

	// parse once up front, so a broken file fails before measuring
	f, err := savefile.Parse(data, opts)
	if err != nil {
		return err
	}

	fmt.Println("Performance testing tool for dSav")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(conf.String())
	fmt.Printf("File: %s (%d bytes, compressed=%t)\n", args[0], len(data), f.IsCompressed())
	fmt.Printf("Iterations: %d\n", iterations)
	fmt.Println()

	fmt.Println("starting tests...")

	registry := gometrics.NewRegistry()
	results := make(map[string]perfResult)

	measure := func(name string, op func() error) {
		timer := gometrics.GetOrRegisterTimer(name, registry)
		for i := 0; i < iterations; i++ {
			start := time.Now()
			if err := op(); err != nil {
				util.Logger.Errorf("(%s) - %v", name, err)
				continue
			}
			timer.UpdateSince(start)
		}
		bench := testing.Benchmark(func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = op()
			}
		})
		results[name] = perfResult{bench: bench, timer: timer}
		printResult(name, results[name])
	}

	measure("parse", func() error {
		_, err := savefile.Parse(data, opts)
		return err
	})
	measure("serialize", func() error {
		_, err := savefile.Serialize(f, opts)
		return err
	})
	measure("round-trip", func() error {
		parsed, err := savefile.Parse(data, opts)
		if err != nil {
			return err
		}
		_, err = savefile.Serialize(parsed, opts)
		return err
	})

	if viper.GetBool("metrics") {
		fmt.Println()
		savefile.WriteMetrics(os.Stdout)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return err
		}
	}
	return nil
}

func printResult(test string, result perfResult) {
	if result.bench.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)

	snap := result.timer.Snapshot()
	ps := snap.Percentiles(perfPercentiles)
	fmt.Printf("%-20sp50 %s\tp95 %s\tp99 %s\tmax %s\n", "",
		time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2]), time.Duration(snap.Max()))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]perfResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{"Test", "NsPerOp", "BytesPerOp", "AllocsPerOp", "P50", "P95", "P99", "Samples"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, name := range []string{"parse", "serialize", "round-trip"} {
		result, ok := results[name]
		if !ok {
			continue
		}
		snap := result.timer.Snapshot()
		ps := snap.Percentiles(perfPercentiles)
		row := []string{
			name,
			strconv.FormatInt(result.bench.NsPerOp(), 10),
			strconv.FormatInt(result.bench.AllocedBytesPerOp(), 10),
			strconv.FormatInt(result.bench.AllocsPerOp(), 10),
			strconv.FormatFloat(ps[0], 'f', 0, 64),
			strconv.FormatFloat(ps[1], 'f', 0, 64),
			strconv.FormatFloat(ps[2], 'f', 0, 64),
			strconv.FormatInt(snap.Count(), 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %v", err)
		}
	}
	return nil
}
