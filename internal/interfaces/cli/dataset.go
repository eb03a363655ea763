package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/LegalLens/internal/application/casebuild"
	"github.com/turtacn/LegalLens/internal/bootstrap"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/pkg/errors"
	"github.com/turtacn/LegalLens/pkg/types/legal"
)

type datasetBuildOptions struct {
	input  string
	output string
	cap    int
	upload bool
}

// NewDatasetCmd builds the `dataset` command group.
func NewDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Build bucketed case datasets",
	}
	cmd.AddCommand(newDatasetBuildCmd())
	return cmd
}

func newDatasetBuildCmd() *cobra.Command {
	opts := &datasetBuildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Extract a JSONL file of judgments into a civil/criminal/traffic dataset",
		Example: `  legallens dataset build --input judgments.jsonl --output out/legal_cases.json
  legallens dataset build --input judgments.jsonl --cap 500 --upload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetBuild(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "JSONL file, one judgment per line (required)")
	f.StringVar(&opts.output, "output-file", "", "dataset file to write")
	f.IntVar(&opts.cap, "cap", 0, "per-category bucket cap (default: extraction.bucket_cap)")
	f.BoolVar(&opts.upload, "upload", false, "upload the dataset to MinIO under minio.dataset_prefix")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runDatasetBuild(cmd *cobra.Command, opts *datasetBuildOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if opts.output == "" && !opts.upload {
		return errors.New(errors.ErrCodeValidation, "nothing to do: give --output-file, --upload or both")
	}
	cfg := cliCtx.Config
	if opts.cap == 0 {
		opts.cap = cfg.Extraction.BucketCap
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatasetReadFailed, "cannot open judgments").WithDetail(opts.input)
	}
	inputs, err := casebuild.ReadJudgments(f)
	f.Close()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd, cliCtx)
	defer cancel()

	infra, err := bootstrap.NewInfrastructure(ctx, cfg, cliCtx.Logger)
	if err != nil {
		return err
	}
	defer infra.Close()
	if opts.upload && infra.Objects == nil {
		return errors.New(errors.ErrCodeValidation, "--upload needs minio.enabled")
	}

	results, err := infra.NewCaseService().BuildBatch(ctx, inputs)
	if err != nil {
		return err
	}

	bucketer := casebuild.NewBucketer(opts.cap, "file:"+opts.input, infra.Metrics)
	summary := &datasetSummary{Input: opts.input, Read: len(inputs)}
	for _, br := range results {
		if br.Err != nil {
			summary.Skipped++
			continue
		}
		summary.Built++
		bucketer.Add(br.Result)
		if bucketer.Full() {
			cliCtx.Logger.Info("all buckets full; remaining judgments ignored")
			break
		}
	}

	ds := bucketer.Dataset()
	summary.Metadata = ds.Metadata
	if opts.output != "" {
		if err := casebuild.WriteDatasetFile(opts.output, ds); err != nil {
			return err
		}
		summary.Output = opts.output
	}
	if opts.upload {
		key, err := casebuild.UploadDataset(ctx, infra.Objects, cfg.MinIO.DatasetPrefix, ds)
		if err != nil {
			return err
		}
		summary.ObjectKey = key
	}
	cliCtx.Logger.Info("dataset built",
		logging.String("run_id", ds.Metadata.RunID),
		logging.Int("total_cases", ds.Metadata.TotalCases))
	return PrintResult(cmd, summary)
}

// datasetSummary reports one dataset build.
type datasetSummary struct {
	Input     string                `json:"input"`
	Read      int                   `json:"judgments_read"`
	Built     int                   `json:"records_built"`
	Skipped   int                   `json:"judgments_skipped"`
	Output    string                `json:"output,omitempty"`
	ObjectKey string                `json:"object_key,omitempty"`
	Metadata  legal.DatasetMetadata `json:"metadata"`
}

func (s *datasetSummary) TableHeaders() []string { return []string{"Category", "Cases"} }

func (s *datasetSummary) TableRows() [][]string {
	m := s.Metadata
	return [][]string{
		{string(legal.CategoryCivil), fmt.Sprint(m.CivilCases)},
		{string(legal.CategoryCriminal), fmt.Sprint(m.CriminalCases)},
		{string(legal.CategoryTraffic), fmt.Sprint(m.TrafficCases)},
		{"total", fmt.Sprint(m.TotalCases)},
	}
}

func (s *datasetSummary) String() string {
	m := s.Metadata
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s: %d judgments read, %d records built, %d skipped\n", m.RunID, s.Read, s.Built, s.Skipped)
	fmt.Fprintf(&sb, "civil=%d criminal=%d traffic=%d total=%d (cap %d)", m.CivilCases, m.CriminalCases, m.TrafficCases, m.TotalCases, m.BucketCap)
	if s.Output != "" {
		fmt.Fprintf(&sb, "\nwritten to %s", s.Output)
	}
	if s.ObjectKey != "" {
		fmt.Fprintf(&sb, "\nuploaded as %s", s.ObjectKey)
	}
	return sb.String()
}
