// Package assess scores and reports saved answer files outside the web app.
//
// The answer files use the JSON array format the web app persists under the lapAnswers key.
package assess

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/logging"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/report"
	"github.com/swhawkins/LAPOK/internal/risk"
	"io"
	"log/slog"
	"os"
	"time"
)

var Group = &cobra.Group{
	ID:    "assess",
	Title: "Assessment operations",
}

var ErrUnknownPolicy = errors.NewSentinel("unknown policy")

func init() {
	Evaluate.Flags().String("policy", "protocol", "scoring policy: protocol or simplified")
	Report.Flags().String("questionnaire", "protocol", "built-in questionnaire name or path to a YAML definition")
}

var Evaluate = &cobra.Command{
	Use:     "evaluate [file]",
	GroupID: "assess",
	Short:   "Print the danger level",
	Long:    `Prints the danger level of a saved answers file`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := cmd.Flags().GetString("policy")
		if err != nil {
			return errors.Wrap(err, "invalid policy flag")
		}
		return evaluate(cmd.OutOrStdout(), args[0], policy)
	},
}

var Report = &cobra.Command{
	Use:     "report [file]",
	GroupID: "assess",
	Short:   "Print the report",
	Long:    `Prints the plain text report of a saved answers file without case information`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString("questionnaire")
		if err != nil {
			return errors.Wrap(err, "invalid questionnaire flag")
		}
		logger := logging.NewLogger(os.Stderr, slog.LevelWarn, false)
		return printReport(cmd.Context(), cmd.OutOrStdout(), logger, args[0], name, time.Now)
	},
}

func readQuestions(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read answers file", slog.String("path", path))
	}
	var questions []models.Question
	if questions, err = models.DecodeQuestions(data); err != nil {
		return nil, errors.Wrap(err, "decode answers file", slog.String("path", path))
	}
	questionnaire.SortByID(questions)
	return questions, nil
}

func evaluate(w io.Writer, path string, policyName string) error {
	policy, ok := risk.PolicyByName(policyName)
	if !ok {
		return errors.Wrap(ErrUnknownPolicy, "lookup policy", slog.String("policy", policyName))
	}
	questions, err := readQuestions(path)
	if err != nil {
		return err
	}
	tally := risk.Count(policy, questions)
	_, err = fmt.Fprintf(w, "Danger Level: %s\nAnswered: %d of %d\nYes: %d counted, %d high risk\n",
		risk.Classify(policy, tally).Upper(), tally.Answered, tally.Total, tally.CountedYes, tally.HighRiskYes)
	return errors.Wrap(err, "write result")
}

func printReport(
	ctx context.Context, w io.Writer, logger *slog.Logger, path string, name string, now func() time.Time) error {
	q, err := questionnaire.Load(name)
	if err != nil {
		return errors.Wrap(err, "load questionnaire")
	}
	var questions []models.Question
	if questions, err = readQuestions(path); err != nil {
		return err
	}
	doc := report.NewGenerator(logger, q, 0).WithClock(now).Generate(ctx, models.NewCaseRecord(), questions)
	_, err = io.WriteString(w, doc.Body+"\n")
	return errors.Wrap(err, "write report")
}
