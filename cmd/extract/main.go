// Command extract runs the field extraction engine over text read from a file
// or stdin and prints the resulting record as JSON. Debug tool for tuning the
// dictionary and the extraction rules.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tezkor/menu-tracker/internal/dictionary"
	"github.com/tezkor/menu-tracker/internal/extractor"
	"github.com/tezkor/menu-tracker/internal/render"
)

func main() {
	var (
		inPath   = flag.String("in", "-", "input file with dish text, - for stdin")
		dictPath = flag.String("dict", "", "optional YAML file with extra field aliases")
		showCard = flag.Bool("card", false, "print the operator card instead of JSON")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dict, err := dictionary.Load(*dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading dictionary: %v\n", err)
		os.Exit(1)
	}

	text, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading input: %v\n", err)
		os.Exit(1)
	}

	engine := extractor.New(dict, logger)
	rec := engine.Extract(extractor.NormalizeTexts([]string{text}))

	if *showCard {
		fmt.Println(render.CardWithExplanation(rec, 0))
		return
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding record: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return strings.TrimRight(string(data), "\n"), err
	}
	data, err := os.ReadFile(path)
	return strings.TrimRight(string(data), "\n"), err
}
