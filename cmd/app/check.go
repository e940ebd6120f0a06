package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ChainHealth/internal/di"
	"ChainHealth/internal/domain/models"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one scoring cycle and print the snapshot",
		Long: `Fetch the marketplace, network and exchange figures, scan the node log
once and print the resulting health snapshot.`,
		Example: `  chainhealth check
  chainhealth check --format markdown > health.md
  chainhealth check -c "" --format json`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().StringP("format", "f", formatJSON, "output format (json, markdown)")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != formatJSON && format != formatMarkdown {
		return fmt.Errorf("unsupported format %q", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer app.Close()

	snap, err := app.Monitor().Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	if format == formatMarkdown {
		return writeMarkdown(cmd.OutOrStdout(), snap)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// writeMarkdown renders a snapshot as a Markdown report.
func writeMarkdown(w io.Writer, snap *models.HealthScore) error {
	md := markdown.NewMarkdown(w)

	md.H1("Chain Health Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Snapshot", "`" + snap.ID + "`"},
			{"Checked", snap.LastChecked.Format(time.RFC3339)},
			{"Overall Score", "**" + strconv.Itoa(snap.OverallScore) + "** / 5"},
			{"Market Score", strconv.Itoa(snap.MarketScore)},
			{"Reorg Score", strconv.Itoa(snap.ReorgScore)},
		},
	})
	md.PlainText("")
	writeVerdict(md, snap.OverallScore)

	market := snap.Data.Market
	md.H2("Market")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Ratio", "Value"},
		Rows: [][]string{
			{"Earning per unit", formatFloat(market.Ratios.EarningPerUnit)},
			{"Profitability", formatFloat(market.Ratios.Profitability)},
			{"Price", formatFloat(market.Ratios.Price)},
			{"Speed", formatFloat(market.Ratios.Speed)},
			{"Network share", formatFloat(market.Ratios.Network)},
		},
	})
	md.PlainText("")
	writeFired(md, market.Fired)

	reorg := snap.Data.Reorg
	md.H2("Reorgs")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Reorgs in window", strconv.FormatUint(uint64(reorg.Summary.Count), 10)},
			{"Deepest", strconv.FormatUint(uint64(reorg.Summary.Deepest), 10)},
			{"Lines scanned", strconv.Itoa(reorg.Summary.Lines)},
			{"Lines in window", strconv.Itoa(reorg.Summary.InWindow)},
		},
	})
	md.PlainText("")
	writeFired(md, reorg.Fired)

	if len(reorg.Summary.Warnings) > 0 {
		md.H2("Skipped Lines")
		md.PlainText("")
		items := make([]string, 0, len(reorg.Summary.Warnings))
		for _, warn := range reorg.Summary.Warnings {
			items = append(items, warn.String())
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	return md.Build()
}

func writeVerdict(md *markdown.Markdown, overall int) {
	switch {
	case overall <= 1:
		md.Cautionf("Chain health is critical (%d/5). Wait for more confirmations before accepting deposits.", overall)
	case overall <= 3:
		md.Warningf("Chain health is degraded (%d/5).", overall)
	default:
		md.Tip("Chain health looks normal.")
	}
	md.PlainText("")
}

func writeFired(md *markdown.Markdown, fired []string) {
	if len(fired) == 0 {
		md.PlainText("No rules fired.")
		md.PlainText("")
		return
	}
	quoted := make([]string, len(fired))
	for i, name := range fired {
		quoted[i] = "`" + name + "`"
	}
	md.PlainText("Rules fired: " + strings.Join(quoted, ", "))
	md.PlainText("")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
