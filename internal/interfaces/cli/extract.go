package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LegalLens/internal/application/casebuild"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/intelligence/crime_summarizer"
	"github.com/turtacn/LegalLens/internal/intelligence/verdict_extractor"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

type extractOptions struct {
	file        string
	html        bool
	cnr         string
	title       string
	description string
	disposal    string
	citation    string
	year        int
}

// NewExtractCmd builds `extract`, which turns one judgment file into a
// CaseRecord.
func NewExtractCmd() *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a case record from one judgment",
		Long:  "Read a judgment from --file (or stdin with --file -) and print its sections, keywords, crime summary and verdict.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "judgment text file, - for stdin (required)")
	f.BoolVar(&opts.html, "html", false, "treat the file as HTML")
	f.StringVar(&opts.cnr, "cnr", "", "case number record")
	f.StringVar(&opts.title, "title", "", "case title")
	f.StringVar(&opts.description, "description", "", "court description")
	f.StringVar(&opts.disposal, "disposal", "", "disposal nature, e.g. \"Dismissed\"")
	f.StringVar(&opts.citation, "citation", "", "reported citation")
	f.IntVar(&opts.year, "year", 0, "judgment year")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runExtract(cmd *cobra.Command, opts *extractOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	var data []byte
	if opts.file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(opts.file)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "cannot read judgment").WithDetail(opts.file)
	}

	in := legal.JudgmentInput{
		CNR:            opts.cnr,
		Title:          opts.title,
		Description:    opts.description,
		DisposalNature: opts.disposal,
		Citation:       opts.citation,
		Year:           opts.year,
	}
	if opts.html {
		in.RawHTML = string(data)
	} else {
		in.Text = string(data)
	}

	ctx, cancel := commandContext(cmd, cliCtx)
	defer cancel()

	svc := casebuild.NewService(nil, casebuild.Config{
		Workers:    1,
		Summarizer: crime_summarizer.DefaultOptions(),
	}, prometheus.NewAppMetrics(prometheus.NewNopCollector()), cliCtx.Logger)
	res, err := svc.Build(ctx, in)
	if err != nil {
		return err
	}
	cliCtx.Logger.Debug("judgment extracted",
		logging.String("case_number", res.Record.CaseNumber),
		logging.Int("sections", len(res.Record.Sections)))
	return PrintResult(cmd, recordOutput{Record: res.Record, Categories: res.Categories()})
}

// recordOutput renders one CaseRecord in every output format.
type recordOutput struct {
	Record     legal.CaseRecord `json:"record"`
	Categories []legal.Category `json:"categories"`
}

func (o recordOutput) TableHeaders() []string { return []string{"Field", "Value"} }

func (o recordOutput) TableRows() [][]string {
	r := o.Record
	v := r.Verdict
	cats := make([]string, len(o.Categories))
	for i, c := range o.Categories {
		cats[i] = string(c)
	}
	return [][]string{
		{"Case Number", r.CaseNumber},
		{"Category", string(r.Category)},
		{"Buckets", strings.Join(cats, ", ")},
		{"Sections", orNone(strings.Join(r.SectionLabels(), ", "))},
		{"Keywords", orNone(strings.Join(r.CrimeKeywords, ", "))},
		{"Outcome", v.Outcome},
		{"Disposal", v.DisposalNature},
		{"Sentence", v.Sentence},
		{"Fine", rupees(v.FineAmount)},
		{"Compensation", rupees(v.CompensationAmount)},
		{"Crime Details", truncateString(r.CrimeDetails, 120)},
	}
}

func (o recordOutput) String() string {
	r := o.Record
	v := r.Verdict
	var sb strings.Builder
	fmt.Fprintf(&sb, "Case: %s (%s)\n", r.CaseNumber, r.Category)
	sb.WriteString("Sections:\n")
	if len(r.Sections) == 0 {
		sb.WriteString("  None specified\n")
	}
	for _, s := range r.Sections {
		marker := ""
		if s.IsPrimary {
			marker = " [primary]"
		}
		fmt.Fprintf(&sb, "  %s - %s (%s)%s\n", s.Label, s.OffenseName, s.OffenseCategory, marker)
	}
	fmt.Fprintf(&sb, "Keywords: %s\n", orNone(strings.Join(r.CrimeKeywords, ", ")))
	fmt.Fprintf(&sb, "Outcome: %s | Disposal: %s\n", v.Outcome, v.DisposalNature)
	fmt.Fprintf(&sb, "Sentence: %s | Fine: %s | Compensation: %s\n", v.Sentence, rupees(v.FineAmount), rupees(v.CompensationAmount))
	fmt.Fprintf(&sb, "Verdict Details: %s\n", v.Detail)
	fmt.Fprintf(&sb, "Crime Details: %s", r.CrimeDetails)
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "None specified"
	}
	return s
}

func rupees(n int64) string {
	if n == 0 {
		return "0"
	}
	return "Rs." + verdict_extractor.FormatRupees(n)
}
