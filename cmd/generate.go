package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/getcreddy/wordforge/pkg/generate"
	"github.com/getcreddy/wordforge/pkg/profile"
	"github.com/getcreddy/wordforge/pkg/watch"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a wordlist from a personal profile",
	Long: `Generate a wordlist from profile facts given as flags, a YAML profile
file, or both. Flags override fields from the file.

Examples:
  wordforge generate --first Jane --pet Rex -o jane.txt
  wordforge generate --profile jane.yaml --max-leet 2 -o jane.txt
  wordforge generate --profile jane.yaml --compress -o jane.txt.lz4
  wordforge generate --profile jane.yaml --watch -o jane.txt`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	out, _ := cmd.Flags().GetString("output")
	profilePath, _ := cmd.Flags().GetString("profile")
	watchProfile, _ := cmd.Flags().GetBool("watch")
	if watchProfile && profilePath == "" {
		return fmt.Errorf("--watch requires --profile")
	}

	gen, closeGen, err := newGenerator(cmd, logger)
	if err != nil {
		return err
	}
	defer closeGen()

	opts := generationOptions(cmd)
	if profilePath != "" {
		opts.Label = filepath.Base(profilePath)
	}

	once := func() error {
		p, err := profileFromFlags(cmd, profilePath)
		if err != nil {
			return err
		}
		res, err := gen.Run(ctx, p, out, opts)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	}

	if err := once(); err != nil {
		if !watchProfile || ctx.Err() != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	if !watchProfile {
		return nil
	}

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", profilePath)
	return watch.File(ctx, profilePath, logger.Named("watch"), func() error {
		err := once()
		if err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	})
}

// newGenerator wires the catalog, logger and history store into a generator.
// The returned func releases the store.
func newGenerator(cmd *cobra.Command, logger hclog.Logger) (*generate.Generator, func(), error) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	genOpts := []generate.Option{
		generate.WithCatalog(cat),
		generate.WithLogger(logger),
	}
	closeFn := func() {}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if viper.GetBool("history.enabled") && !noHistory {
		s, err := openHistory()
		if err != nil {
			logger.Warn("run history unavailable", "error", err)
		} else {
			genOpts = append(genOpts, generate.WithStore(s))
			closeFn = func() { s.Close() }
		}
	}

	return generate.New(genOpts...), closeFn, nil
}

// generationOptions reads the shared generation flags
func generationOptions(cmd *cobra.Command) generate.Options {
	noCommon, _ := cmd.Flags().GetBool("no-common")
	noKeyboard, _ := cmd.Flags().GetBool("no-keyboard")
	prefixes, _ := cmd.Flags().GetBool("prefixes")
	compress, _ := cmd.Flags().GetBool("compress")

	return generate.Options{
		MaxLeet:         intSetting(cmd, "max-leet", "generate.max_leet"),
		IncludeCommon:   !noCommon,
		IncludeKeyboard: !noKeyboard,
		IncludePrefixes: prefixes,
		Workers:         intSetting(cmd, "workers", "generate.workers"),
		Compress:        compress,
	}
}

// profileFromFlags loads the profile file, if any, and overlays the field flags
func profileFromFlags(cmd *cobra.Command, path string) (profile.Profile, error) {
	var p profile.Profile
	if path != "" {
		loaded, err := profile.Load(path)
		if err != nil {
			return p, err
		}
		p = loaded
	}

	var flags profile.Profile
	flags.First, _ = cmd.Flags().GetString("first")
	flags.Last, _ = cmd.Flags().GetString("last")
	flags.Nick, _ = cmd.Flags().GetString("nick")
	flags.Birth, _ = cmd.Flags().GetString("birth")
	flags.Pet, _ = cmd.Flags().GetString("pet")
	flags.Company, _ = cmd.Flags().GetString("company")

	return p.Merge(flags), nil
}

func printResult(res *generate.Result) {
	size := uint64(res.Bytes)
	if info, err := os.Stat(res.Output); err == nil {
		size = uint64(info.Size())
	}
	fmt.Printf("Wordlist generated: %s (%s, %s lines)\n",
		res.Output, humanize.Bytes(size), humanize.Comma(res.Lines))
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-leet", generate.DefaultOptions().MaxLeet, "Maximum leet substitutions per candidate (0-3)")
	cmd.Flags().Int("workers", 1, "Base words expanded concurrently")
	cmd.Flags().Bool("no-common", false, "Do not append the common password list")
	cmd.Flags().Bool("no-keyboard", false, "Do not write keyboard walks first")
	cmd.Flags().Bool("prefixes", false, "Also prepend symbol prefixes to candidates")
	cmd.Flags().Bool("compress", false, "Write lz4 compressed output")
	cmd.Flags().String("catalog", "", "Catalog overrides file (suffixes, prefixes, keyboard walks, leet table)")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "Output wordlist file (required)")
	generateCmd.Flags().String("profile", "", "YAML profile file")
	generateCmd.Flags().String("first", "", "First name")
	generateCmd.Flags().String("last", "", "Last name")
	generateCmd.Flags().String("nick", "", "Nickname")
	generateCmd.Flags().String("birth", "", "Birth year or date")
	generateCmd.Flags().String("pet", "", "Pet name")
	generateCmd.Flags().String("company", "", "Company name")
	generateCmd.Flags().Bool("watch", false, "Regenerate whenever the profile file changes")
	addGenerationFlags(generateCmd)
	generateCmd.MarkFlagRequired("output")
}
