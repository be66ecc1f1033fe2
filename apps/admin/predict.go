package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/studyflow/studyflow/core/grade"
)

func (cli *commandLine) predictCmd() *cobra.Command {
	var file string
	var target float64

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run the grade engine on a JSON list of assessments",
		Long: "Reads a JSON array of {name, weight, score, max_score} records " +
			"from --file (\"-\" for stdin) and prints the grade summary.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				_ = cmd.Usage()
				return errHelp
			}
			if !cmd.Flags().Changed("target") {
				target = cli.conf.Grades.DefaultTarget
			}
			return cli.predict(cmd.InOrStdin(), file, target)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the records JSON file")
	cmd.Flags().Float64VarP(&target, "target", "t", 0, "Target grade in percent (defaults to the configured target)")
	return cmd
}

func (cli *commandLine) predict(stdin io.Reader, file string, target float64) error {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return errors.Wrap(err, "opening records")
		}
		defer f.Close()
		r = f
	}

	var input []recordInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return errors.Wrap(err, "decoding records")
	}
	records := make([]grade.Record, 0, len(input))
	for _, in := range input {
		records = append(records, in.record(cli.conf.Grades.DefaultMaxScore))
	}

	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(grade.Summarize(records, target))
}

// recordInput is a predict record as read from JSON.
// Only an absent max_score takes the default; an explicit 0 leaves the record out of the grade.
type recordInput struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Score    float64  `json:"score"`
	MaxScore *float64 `json:"max_score"`
}

func (in recordInput) record(defaultMaxScore float64) grade.Record {
	rec := grade.Record{Name: in.Name, Weight: in.Weight, Score: in.Score, MaxScore: defaultMaxScore}
	if in.MaxScore != nil {
		rec.MaxScore = *in.MaxScore
	}
	return rec
}
