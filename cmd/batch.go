package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/getcreddy/wordforge/pkg/profile"
)

var batchCmd = &cobra.Command{
	Use:   "batch <glob>",
	Short: "Generate one wordlist per profile file",
	Long: `Generate a wordlist for every YAML profile matching a glob. Patterns
support ** to match nested directories. Each list is written to the
output directory under the profile's name.

Examples:
  wordforge batch 'profiles/*.yaml' --out-dir lists
  wordforge batch 'engagement/**/*.yml' --out-dir lists --compress`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()
		outDir, _ := cmd.Flags().GetString("out-dir")

		matches, err := doublestar.FilepathGlob(args[0])
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no profiles match %s", args[0])
		}
		sort.Strings(matches)

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		gen, closeGen, err := newGenerator(cmd, logger)
		if err != nil {
			return err
		}
		defer closeGen()

		opts := generationOptions(cmd)

		var errs []error
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROFILE\tOUTPUT\tSIZE\tLINES")
		for _, path := range matches {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}

			p, err := profile.Load(path)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}

			out := batchOutput(outDir, path, opts.Compress)
			o := opts
			o.Label = filepath.Base(path)
			res, err := gen.Run(ctx, p, out, o)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}

			size := uint64(res.Bytes)
			if info, err := os.Stat(out); err == nil {
				size = uint64(info.Size())
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", path, out, humanize.Bytes(size), humanize.Comma(res.Lines))
		}
		w.Flush()

		return errors.Join(errs...)
	},
}

// batchOutput names the wordlist for a profile file: jane.yaml becomes jane.txt
func batchOutput(dir, profilePath string, compress bool) string {
	name := filepath.Base(profilePath)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".txt"
	if compress {
		name += ".lz4"
	}
	return filepath.Join(dir, name)
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("out-dir", "", "Directory for generated wordlists (required)")
	addGenerationFlags(batchCmd)
	batchCmd.MarkFlagRequired("out-dir")
}
