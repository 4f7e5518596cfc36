package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cognicore/phasenorm/pkg/phasenorm"
	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Normalize a file of mentions",
	Long: `Read mentions (JSON array or JSON Lines), run the full normalization
pipeline and write the surviving mentions in the same shape.

Every input record needs "phase", "property", "relationship" and
"paragraph" string fields; other fields are copied through unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		tables, err := loadTables()
		if err != nil {
			return err
		}

		pipeline, err := phasenorm.New(phasenorm.Options{
			Tables:      tables,
			Logger:      logger,
			FoldUnicode: viper.GetBool("fold-unicode"),
			StripMarkup: viper.GetBool("strip-markup"),
			Workers:     viper.GetInt("workers"),
		})
		if err != nil {
			return fmt.Errorf("build pipeline: %w", err)
		}

		in, err := readMentions(viper.GetString("input"))
		if err != nil {
			return err
		}

		res, err := pipeline.Run(cmd.Context(), in)
		if err != nil {
			return err
		}

		if err := writeMentions(viper.GetString("output"), res.Mentions, viper.GetBool("jsonl")); err != nil {
			return err
		}
		logger.Info("mentions written",
			zap.String("run_id", res.RunID),
			zap.Int("count", len(res.Mentions)))
		return nil
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringP("input", "i", "-", "input file, - for stdin")
	flags.StringP("output", "o", "-", "output file, - for stdout")
	flags.Bool("jsonl", false, "write JSON Lines instead of a JSON array")
	flags.Int("workers", 1, "number of shards normalized concurrently")
	flags.Bool("fold-unicode", false, "apply NFKC to phase names before rewriting")
	flags.Bool("strip-markup", false, "read paragraphs as HTML when resolving β")

	for _, name := range []string{"input", "output", "jsonl", "workers", "fold-unicode", "strip-markup"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(runCmd)
}

func readMentions(path string) ([]mention.Mention, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	ms, err := mention.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ms, nil
}

func writeMentions(path string, ms []mention.Mention, jsonl bool) (err error) {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := mention.Encode(bw, ms, jsonl); err != nil {
		return err
	}
	return bw.Flush()
}
