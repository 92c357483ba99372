package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"github.com/probkit/dirmult/dirichlet"
	"github.com/probkit/dirmult/unigram"
)

func checkError(e error) {
	// "value of 1 prints details of caller of Output," so value of 2 for caller of checkError
	if e != nil {
		log.Output(2, e.Error())
		os.Exit(1)
	}
}

func loadModel(path string) *dirichlet.Multinomial[string] {
	f, err := os.Open(path)
	checkError(err)
	defer f.Close()

	m := dirichlet.New[string]()
	checkError(m.Decode(f))
	return m
}

var outputPath string

func writeModel(m *dirichlet.Multinomial[string]) {
	out := os.Stdout
	if outputPath != "" {
		var err error
		out, err = os.Create(outputPath)
		checkError(err)
		defer out.Close()
	}

	checkError(m.Encode(out))
}

func eachToken(paths []string, cb func(string)) {
	readers := []io.Reader{os.Stdin}
	if len(paths) > 0 {
		readers = nil
		for _, p := range paths {
			f, err := os.Open(p)
			checkError(err)
			defer f.Close()
			readers = append(readers, f)
		}
	}

	for _, r := range readers {
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			cb(scanner.Text())
		}
		checkError(scanner.Err())
	}
}

var (
	alpha     float64
	vocabSize uint64
	numDraws  int
	seed      int64
	vecLen    uint64
)

func init() {
	count.Flags().StringVarP(&outputPath, "output", "o", "", "model output path (defaults to stdout)")
	count.Flags().Float64Var(&alpha, "alpha", 0, "symmetric prior pseudo-count per event")
	count.Flags().Uint64Var(&vocabSize, "vocab", 0, "vocabulary size for the symmetric prior")
	merge.Flags().StringVarP(&outputPath, "output", "o", "", "model output path (defaults to stdout)")
	sample.Flags().IntVarP(&numDraws, "draws", "n", 10, "number of events to draw")
	sample.Flags().Int64Var(&seed, "seed", 0, "random seed (defaults to current time)")
	likelihood.Flags().Uint64Var(&vecLen, "veclen", 1001, "hashed id-space size for the unigram model")
}

var count = cobra.Command{
	Use:   "count [corpus files...]",
	Short: "build a model from whitespace-delimited tokens (stdin if no files given)",
	Run: func(cmd *cobra.Command, args []string) {
		model := dirichlet.NewWithPrior[string](dirichlet.NewSymmetric[string](alpha, vocabSize))
		eachToken(args, func(tok string) {
			model.Add(tok, 1)
		})
		writeModel(model)
	},
}

var merge = cobra.Command{
	Use:   "merge base.model other.model [more.model ...]",
	Short: "fold the counts of other models into a base model, keeping the base prior",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		base := loadModel(args[0])
		for _, path := range args[1:] {
			base.Merge(loadModel(path))
		}
		writeModel(base)
	},
}

var modelStats = cobra.Command{
	Use:   "stats model",
	Short: "print summary statistics for a model",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := loadModel(args[0])

		var counts []float64
		m.EachSeen(func(_ string, c float64) bool {
			counts = append(counts, c)
			return true
		})

		fmt.Printf("events:       %d\n", m.Len())
		fmt.Printf("total:        %g\n", m.Total())
		fmt.Printf("prior mass:   %g\n", m.Prior().TotalPseudoCount())
		if len(counts) == 0 {
			return
		}

		mean, err := stats.Mean(counts)
		checkError(err)
		median, err := stats.Median(counts)
		checkError(err)
		stddev, err := stats.StandardDeviation(counts)
		checkError(err)
		fmt.Printf("count mean:   %g\n", mean)
		fmt.Printf("count median: %g\n", median)
		fmt.Printf("count stddev: %g\n", stddev)
	},
}

var sample = cobra.Command{
	Use:   "sample model",
	Short: "draw events from a model proportionally to their smoothed probability",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := loadModel(args[0])

		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < numDraws; i++ {
			ev, err := m.Sample(rng)
			checkError(err)
			fmt.Println(ev)
		}
	},
}

var likelihood = cobra.Command{
	Use:   "likelihood corpus [query files...]",
	Short: "train a unigram model on a corpus and score query lines (stdin if no files given)",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		model := unigram.NewModel(vecLen)
		eachToken(args[:1], func(tok string) {
			model.Add(tok)
		})

		readers := []io.Reader{os.Stdin}
		if len(args) > 1 {
			readers = nil
			for _, p := range args[1:] {
				f, err := os.Open(p)
				checkError(err)
				defer f.Close()
				readers = append(readers, f)
			}
		}
		for _, r := range readers {
			scanner := bufio.NewScanner(r)
			for scanner.Scan() {
				line := scanner.Text()
				fmt.Printf("%g\t%s\n", model.LogLikelihood(strings.Fields(line)), line)
			}
			checkError(scanner.Err())
		}
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "dirmult"}
	rootCmd.AddCommand(&count)
	rootCmd.AddCommand(&merge)
	rootCmd.AddCommand(&modelStats)
	rootCmd.AddCommand(&sample)
	rootCmd.AddCommand(&likelihood)

	rootCmd.Execute()
}
