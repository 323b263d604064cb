package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/getcreddy/wordforge/pkg/strength"
)

type analysis struct {
	strength.Result
	Entropy *float64 `json:"entropy,omitempty"`
	Band    string   `json:"band,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <password>",
	Short: "Estimate how guessable a password is",
	Long: `Score a password from 0 (trivially guessable) to 4 and estimate how
long an offline attack would take. Pass --hint for each personal fact
known about the owner; passwords built from them score lower.

Examples:
  wordforge analyze 'Janerex2024!'
  wordforge analyze 'Janerex2024!' --hint jane --hint rex --entropy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hints, _ := cmd.Flags().GetStringSlice("hint")
		withEntropy, _ := cmd.Flags().GetBool("entropy")
		outputJSON, _ := cmd.Flags().GetBool("json")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		oracle := strength.NewZxcvbn(hints, cat.KeyboardWalks)
		a := analysis{Result: oracle.Analyze(args[0])}
		if withEntropy {
			e := strength.Entropy(args[0])
			a.Entropy = &e
			a.Band = strength.Band(e)
		}

		if outputJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(a)
		}

		fmt.Printf("Password:   %s\n", a.Password)
		fmt.Printf("Score:      %s\n", scoreColor(a.Score).Sprintf("%d/4", a.Score))
		fmt.Printf("Crack time: %s\n", a.CrackTime)
		if a.Entropy != nil {
			fmt.Printf("Entropy:    %.2f bits (%s)\n", *a.Entropy, a.Band)
		}
		if a.Warning != "" {
			fmt.Printf("Warning:    %s\n", color.YellowString(a.Warning))
		}
		for _, s := range a.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
		return nil
	},
}

func scoreColor(score int) *color.Color {
	switch {
	case score <= 1:
		return color.New(color.FgRed, color.Bold)
	case score == 2:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgGreen, color.Bold)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSlice("hint", nil, "Personal fact about the password owner (repeatable)")
	analyzeCmd.Flags().Bool("entropy", false, "Also show the character-pool entropy estimate")
	analyzeCmd.Flags().Bool("json", false, "Output as JSON")
	analyzeCmd.Flags().String("catalog", "", "Catalog overrides file")
}
