package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/orchestrators/craft"
	assetsrepo "github.com/iniside/velesarc-craft/internal/repositories/assets"
)

var (
	ingredientArgs []string
	iterations     int
	importFrom     string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [recipe]",
	Short: "Build one output of a recipe",
	Long: `Build one output of a recipe from the given ingredients and print the
item with its build report. Ingredients are definition[:amount[:tag,tag]]:

  evaluate recipes/iron_sword -i items/iron_ingot:2:Quality.Fine -i items/hammer`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [recipe]",
	Short: "Run a recipe many times and report output frequencies",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

var validateCmd = &cobra.Command{
	Use:   "validate [asset...]",
	Short: "Run data checks on authored assets",
	Long:  `Run data checks on the given assets, or on every stored asset when none are named.`,
	RunE:  runValidate,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a directory of JSON assets into the asset store",
	Long: `Decode every *.json document under --from and store it in the configured
asset store, usually a sqlite database selected with --sqlite-path.`,
	RunE: runImport,
}

func init() {
	for _, cmd := range []*cobra.Command{evaluateCmd, simulateCmd} {
		cmd.Flags().StringArrayVarP(&ingredientArgs, "ingredient", "i", nil, "Ingredient as definition[:amount[:tag,tag]]")
		addDataFlags(cmd)
	}
	simulateCmd.Flags().IntVarP(&iterations, "iterations", "n", craft.DefaultIterations, "Number of crafts to simulate")

	addDataFlags(validateCmd)

	importCmd.Flags().StringVar(&importFrom, "from", "", "Directory of JSON documents to import")
	_ = importCmd.MarkFlagRequired("from")
	addDataFlags(importCmd)
}

// parseIngredient reads definition[:amount[:tag,tag]]
func parseIngredient(raw string) (craft.ItemInput, error) {
	parts := strings.SplitN(raw, ":", 3)
	in := craft.ItemInput{DefinitionID: strings.TrimSpace(parts[0]), Amount: 1}
	if in.DefinitionID == "" {
		return in, fmt.Errorf("ingredient %q has no definition", raw)
	}
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return in, fmt.Errorf("ingredient %q has an invalid amount: %w", raw, err)
		}
		in.Amount = n
	}
	if len(parts) > 2 {
		in.Tags = tags.FromStrings(strings.Split(parts[2], ",")...)
	}
	return in, nil
}

func parseIngredients(raw []string) ([]craft.ItemInput, error) {
	out := make([]craft.ItemInput, 0, len(raw))
	for _, r := range raw {
		in, err := parseIngredient(r)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ingredients, err := parseIngredients(ingredientArgs)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.craft.EvaluateOutput(cmd.Context(), &craft.EvaluateOutputInput{
		RecipeID:    args[0],
		Ingredients: ingredients,
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	return printJSON(cmd, map[string]any{
		"item":               out.Item,
		"report":             out.Report,
		"qualityMultipliers": out.QualityMultipliers,
	})
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ingredients, err := parseIngredients(ingredientArgs)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.craft.Simulate(cmd.Context(), &craft.SimulateInput{
		RecipeID:    args[0],
		Ingredients: ingredients,
		Iterations:  iterations,
		Seed:        seed,
	})
	if err != nil {
		return err
	}

	return printJSON(cmd, out)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	paths := args
	if len(paths) == 0 {
		if paths, err = a.registry.Paths(ctx, ""); err != nil {
			return err
		}
	}

	failed := 0
	w := cmd.OutOrStdout()
	for _, p := range paths {
		report, err := a.registry.Validate(ctx, p)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", p, err)
			continue
		}
		status := "ok  "
		if !report.Valid() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s %s\n", status, p)
		for _, e := range report.Errors {
			fmt.Fprintf(w, "     error: %s\n", e)
		}
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "     warning: %s\n", warn)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed validation", failed, len(paths))
	}
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	source, err := assetsrepo.NewFilesystemRepository(&assetsrepo.FilesystemConfig{Root: importFrom})
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := source.List(ctx, assetsrepo.ListInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, summary := range list.Summaries {
		doc, err := source.Get(ctx, assetsrepo.GetInput{Path: summary.Path})
		if err != nil {
			return err
		}
		created, err := a.registry.Import(ctx, summary.Path, doc.Record.Body)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", summary.Path, err)
		}
		verb := "updated"
		if created {
			verb = "created"
		}
		fmt.Fprintf(w, "%s %s\n", verb, summary.Path)
	}

	fmt.Fprintf(w, "imported %d assets\n", len(list.Summaries))
	return nil
}
