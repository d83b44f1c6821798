package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the saved study plan and earned badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		profile, err := s.ProfileRepo().Get(ctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if profile == nil || profile.UserName == "" {
			fmt.Println("No profile yet. Run studybuddy to get started.")
			return nil
		}

		snap, err := s.SnapshotRepo().Latest(ctx, profile.UserKey())
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}

		awards, err := s.EventRepo().QueryBadgeAwards(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query badge awards: %w", err)
		}
		earnedAt := make(map[badges.ID]time.Time)
		for _, a := range awards {
			if a.UserKey == profile.UserKey() {
				earnedAt[badges.ID(a.BadgeID)] = a.Timestamp
			}
		}

		writeProgress(os.Stdout, locale.New(cfg.UI.Language), profile, snap, earnedAt)
		return nil
	},
}

// writeProgress prints the learner, the saved plan and the badge list.
// Badges count as earned only when the snapshot lists them, so a reset
// locks them again even though their award events stay in the log;
// earnedAt only supplies the date shown next to an earned badge.
func writeProgress(w io.Writer, cat *locale.Catalog, profile *store.Profile, snap *store.Snapshot, earnedAt map[badges.ID]time.Time) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "Learner:   %s\n", profile.UserName)
	fmt.Fprintf(w, "Assistant: %s\n", profile.AssistantName)
	fmt.Fprintln(w, sep)

	if snap == nil || snap.Data.Plan == nil {
		fmt.Fprintln(w, cat.T(locale.ProgressNoPlan))
	} else {
		printPlan(w, cat, snap)
	}

	earned := make(map[badges.ID]bool)
	if snap != nil {
		for _, b := range snap.Data.Badges {
			earned[badges.ID(b)] = true
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, cat.T(locale.BadgesTitle))
	fmt.Fprintln(w, sep)
	for _, id := range badges.All() {
		if !earned[id] {
			fmt.Fprintf(w, "🔒  %-22s %s\n", id.Name(cat), id.Description(cat))
			continue
		}
		date := ""
		if at, ok := earnedAt[id]; ok {
			date = at.Local().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s  %-22s %s\n", id.Icon(), id.Name(cat), date)
	}
}

func printPlan(w io.Writer, cat *locale.Catalog, snap *store.Snapshot) {
	plan := snap.Data.Plan
	done := make(map[string]bool, len(snap.Data.Completed))
	for _, name := range snap.Data.Completed {
		done[name] = true
	}

	pct := 0
	if n := len(plan.SubTopics); n > 0 {
		pct = len(done) * 100 / n
	}
	fmt.Fprintf(w, "%s\n", plan.MainTopic)
	fmt.Fprintln(w, cat.T(locale.ProgressOverview, len(done), len(plan.SubTopics), pct))
	fmt.Fprintln(w)

	for i, name := range plan.SubTopics {
		mark := "○"
		switch {
		case done[name]:
			mark = "✓"
		case !snap.Data.AllUnlocked && i > 0 && !done[plan.SubTopics[i-1]]:
			mark = "🔒"
		}
		fmt.Fprintf(w, "  %s %d. %s\n", mark, i+1, name)
	}
	fmt.Fprintf(w, "\nSaved %s\n", snap.Timestamp.Local().Format("2006-01-02 15:04"))
}
