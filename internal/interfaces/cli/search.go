package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/LegalLens/internal/application/statute_search"
	"github.com/turtacn/LegalLens/internal/bootstrap"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
)

// NewSearchCmd builds `search <query>`, which ranks the statute corpus.
func NewSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank statutes against a free-text query",
		Example: `  legallens search "section 302 murder"
  legallens search "drunk driving" --limit 5 -o table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, statute_search.CorpusStatutes, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (default: ranker.default_limit)")
	return cmd
}

// NewPrecedentsCmd builds `precedents <query>`, which ranks historical cases.
func NewPrecedentsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "precedents <query>",
		Short: "Rank historical cases against a free-text query",
		Long:  "Rank the case dataset configured by corpus.cases_file against the query.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, statute_search.CorpusPrecedents, strings.Join(args, " "), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (default: ranker.default_limit)")
	return cmd
}

func runSearch(cmd *cobra.Command, corpusName, query string, limit int) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if limit == 0 {
		limit = cliCtx.Config.Ranker.DefaultLimit
	}

	ctx, cancel := commandContext(cmd, cliCtx)
	defer cancel()

	infra, err := bootstrap.NewInfrastructure(ctx, cliCtx.Config, cliCtx.Logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	store, err := infra.NewCorpusStore(ctx)
	if err != nil {
		return err
	}
	svc := infra.NewSearchService(store)

	var res *statute_search.SearchResult
	if corpusName == statute_search.CorpusPrecedents {
		res, err = svc.SearchPrecedents(ctx, query, limit)
	} else {
		res, err = svc.SearchStatutes(ctx, query, limit)
	}
	if err != nil {
		return err
	}
	cliCtx.Logger.Debug("search finished",
		logging.String("corpus", corpusName),
		logging.Int("matches", len(res.Matches)),
		logging.String("corpus_version", res.Version))
	return PrintResult(cmd, searchOutput{res})
}

// searchOutput renders a SearchResult: its text block, its JSON, or a
// score table.
type searchOutput struct {
	*statute_search.SearchResult
}

func (o searchOutput) String() string { return o.Text }

func (o searchOutput) MarshalJSON() ([]byte, error) { return json.Marshal(o.SearchResult) }

func (o searchOutput) TableHeaders() []string {
	if o.Corpus == statute_search.CorpusPrecedents {
		return []string{"Rank", "Score", "Case", "Offenses", "Outcome"}
	}
	return []string{"Rank", "Score", "Act", "Section", "Title"}
}

func (o searchOutput) TableRows() [][]string {
	rows := make([][]string, 0, len(o.Matches))
	for i, m := range o.Matches {
		row := []string{fmt.Sprintf("%d", i+1), colorizeScore(m.Score)}
		if o.Corpus == statute_search.CorpusPrecedents {
			outcome := ""
			if i < len(o.Cases) {
				outcome = o.Cases[i].Verdict.Outcome
			}
			row = append(row, m.Entry.SectionNumber, truncateString(m.Entry.Title, 50), outcome)
		} else {
			row = append(row, m.Entry.Act, m.Entry.SectionNumber, truncateString(m.Entry.Title, 60))
		}
		rows = append(rows, row)
	}
	return rows
}

// colorizeScore highlights citation-level and phrase-level matches.
func colorizeScore(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	switch {
	case score >= 50:
		return color.GreenString(s)
	case score >= 10:
		return color.YellowString(s)
	default:
		return s
	}
}
