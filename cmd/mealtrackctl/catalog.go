package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adhaka3/whatsapp-llm-agent/internal/catalog"
	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

func init() {
	catalogCmd := &cobra.Command{Use: "catalog", Short: "Food catalog operations"}

	// build
	var inPath, outPath string
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a catalog JSON file from a nutrient table CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := runCatalogBuild(inPath, outPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "wrote %d foods to %s\n", n, outPath)
			return nil
		},
	}
	buildCmd.Flags().StringVarP(&inPath, "in", "i", "", "Input CSV with food_name, energy_kcal, protein_g columns (required)")
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "indian_foods.json", "Output catalog JSON path")
	_ = buildCmd.MarkFlagRequired("in")
	catalogCmd.AddCommand(buildCmd)

	// check
	var checkPath string
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a catalog file and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(checkPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s: %d foods\n", checkPath, cat.Len())
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&checkPath, "path", "p", "indian_foods.json", "Catalog JSON path")
	catalogCmd.AddCommand(checkCmd)

	rootCmd.AddCommand(catalogCmd)
}

// runCatalogBuild converts a nutrient table CSV into the catalog JSON format,
// preserving row order. Header names are normalized (trimmed, lowercased,
// spaces to underscores); a name seen twice keeps its first position and
// takes the later values, matching catalog load semantics.
func runCatalogBuild(inPath, outPath string) (int, error) {
	f, err := os.Open(inPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{}
	for i, col := range header {
		norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(col)), " ", "_")
		cols[norm] = i
	}
	nameCol, ok := cols["food_name"]
	if !ok {
		return 0, fmt.Errorf("csv missing food_name column")
	}
	calCol, ok := cols["energy_kcal"]
	if !ok {
		return 0, fmt.Errorf("csv missing energy_kcal column")
	}
	protCol, ok := cols["protein_g"]
	if !ok {
		return 0, fmt.Errorf("csv missing protein_g column")
	}

	var entries []model.FoodEntry
	pos := map[string]int{}
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		line++
		name := strings.ToLower(strings.TrimSpace(rec[nameCol]))
		if name == "" {
			return 0, fmt.Errorf("line %d: empty food_name", line)
		}
		cal, err := strconv.ParseFloat(strings.TrimSpace(rec[calCol]), 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: energy_kcal: %w", line, err)
		}
		prot, err := strconv.ParseFloat(strings.TrimSpace(rec[protCol]), 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: protein_g: %w", line, err)
		}
		if cal < 0 || prot < 0 {
			return 0, fmt.Errorf("line %d: negative nutrition value for %q", line, name)
		}
		e := model.FoodEntry{Name: name, Calories: cal, ProteinG: prot}
		if i, dup := pos[name]; dup {
			entries[i] = e
		} else {
			pos[name] = len(entries)
			entries = append(entries, e)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	if err := catalog.Encode(out, entries); err != nil {
		_ = out.Close()
		return 0, err
	}
	return len(entries), out.Close()
}
