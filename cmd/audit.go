package cmd

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/govscope/govscope/internal/utils"
	"github.com/govscope/govscope/pkg/audit"
	"github.com/govscope/govscope/pkg/journal"
	"github.com/govscope/govscope/pkg/lighthouse"
	"github.com/govscope/govscope/pkg/report"
	"github.com/govscope/govscope/pkg/sites"
	"github.com/govscope/govscope/pkg/store"
	"github.com/govscope/govscope/pkg/webping"
)

var auditCmd = &cobra.Command{
	Use:   "audit [tld]",
	Short: "Audit all tracked sites (or one) and merge the results into the month's reports",
	Long: `Runs the audit engine against every site in countries.json, strictly
sequentially with a pacing delay between sites. A site that fails to
audit is recorded as a zero-score placeholder and the batch continues;
only an unreadable site list aborts the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(dataDir(cmd))

		siteList, err := sites.Load(st.CountriesPath())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			filtered := siteList[:0]
			for _, s := range siteList {
				if s.TLD == args[0] {
					filtered = append(filtered, s)
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("no site with identifier %q in %s", args[0], st.CountriesPath())
			}
			siteList = filtered
		}

		month, _ := cmd.Flags().GetString("month")
		if month == "" {
			month = report.CurrentMonth()
		}

		strategy, _ := cmd.Flags().GetString("strategy")
		if strategy == "" {
			strategy = viper.GetString("pagespeed.strategy")
		}

		engine := lighthouse.NewClient(
			viper.GetString("pagespeed.key"),
			strategy,
			time.Duration(viper.GetInt("audit.timeout"))*time.Second,
		)
		probeClient := &http.Client{Timeout: 15 * time.Second}
		delay := time.Duration(viper.GetInt("audit.delay")) * time.Second

		ctx := cmd.Context()
		var batch []report.SiteReport
		failed := 0
		for i, site := range siteList {
			if i > 0 && delay > 0 {
				// Pacing between heavyweight engine sessions.
				time.Sleep(delay)
			}
			rep, ok := auditSite(ctx, engine, probeClient, site)
			if !ok {
				failed++
			}
			batch = append(batch, *rep)
		}

		now := time.Now().UTC()
		summary := report.Merge(st.LoadSummary(month), month, batch, now)
		if err := st.SaveSummary(summary); err != nil {
			return err
		}
		for i := range batch {
			if err := st.SaveDetail(month, &batch[i]); err != nil {
				return err
			}
		}

		manifest := st.LoadManifest()
		manifest.Upsert(month, store.SummaryFilename(month), now)
		if err := st.SaveManifest(manifest); err != nil {
			return err
		}

		recordJournal(ctx, dataDir(cmd), month, batch)

		utils.Log.Infof("Audited %d site(s) for %s, %d failed", len(batch), month, failed)
		return nil
	},
}

// auditSite runs one site through probe, engine and extraction. Every
// failure path degrades to a zero-score placeholder so the batch
// continues; ok reports whether a real audit was recorded.
func auditSite(ctx context.Context, engine lighthouse.Source, probeClient *http.Client, site sites.Site) (*report.SiteReport, bool) {
	now := time.Now().UTC()

	ping, err := webping.Probe(ctx, probeClient, site.URL)
	if err != nil {
		utils.Log.Warnf("%s unreachable, recording placeholder: %v", site.TLD, err)
		return audit.Placeholder(site, now), false
	}
	utils.Log.Debugf("%s reachable (%d, %q), starting engine run", site.TLD, ping.StatusCode, ping.Title)

	raw, err := engine.Audit(ctx, site.URL)
	if err != nil {
		utils.Log.Warnf("Audit of %s failed, recording placeholder: %v", site.TLD, err)
		return audit.Placeholder(site, now), false
	}

	rep, err := audit.Extract(site, raw, now)
	if err != nil {
		utils.Log.Warnf("Incomplete audit result for %s, recording placeholder: %v", site.TLD, err)
		return audit.Placeholder(site, now), false
	}

	utils.Log.Infof("%s: perf=%d a11y=%d best=%d seo=%d", site.TLD,
		rep.Scores.Performance, rep.Scores.Accessibility, rep.Scores.BestPractices, rep.Scores.SEO)
	return rep, true
}

// recordJournal logs score movements to the sqlite journal. Best effort:
// journal problems are warnings, never run failures.
func recordJournal(ctx context.Context, dir, month string, batch []report.SiteReport) {
	db, err := journal.Open(filepath.Join(dir, "journal.sqlite"))
	if err != nil {
		utils.Log.Warnf("Could not open journal: %v", err)
		return
	}
	defer db.Close()

	changes, err := db.RecordRun(ctx, month, batch)
	if err != nil {
		utils.Log.Warnf("Could not record journal entries: %v", err)
		return
	}
	for _, c := range changes {
		utils.Log.Infof("%s %s %s: %d -> %d", c.Month, c.TLD, c.Category, c.OldScore, c.NewScore)
	}
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().String("month", "", "Month key to write (YYYY-MM, default: current month)")
	auditCmd.Flags().String("strategy", "", "Engine strategy: mobile or desktop (default: config)")
}
