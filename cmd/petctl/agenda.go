package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"pet-tracker/internal/agenda"
	"pet-tracker/internal/domain/confirm"
	"pet-tracker/internal/domain/reminders"

	"github.com/spf13/cobra"
)

func init() {
	var date, petsCSV, categoriesCSV string

	agendaCmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the reminders of a day and the marked days of its month",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			loc, err := location()
			if err != nil {
				return err
			}
			if date == "" {
				date = reminders.DateString(time.Now(), loc)
			}

			filter, err := parseFilter(petsCSV, categoriesCSV)
			if err != nil {
				return err
			}

			ctrl := agenda.NewController(c, nil, date, loc)
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return err
			}
			printAgenda(os.Stdout, ctrl.SetFilters(filter))
			return nil
		},
	}
	agendaCmd.Flags().StringVarP(&date, "date", "d", "", "Selected day YYYY-MM-DD (default today)")
	agendaCmd.Flags().StringVar(&petsCSV, "pets", "", "Comma separated pet IDs")
	agendaCmd.Flags().StringVar(&categoriesCSV, "categories", "", "Comma separated categories")

	rootCmd.AddCommand(agendaCmd)
}

func parseFilter(petsCSV, categoriesCSV string) (reminders.Filter, error) {
	f := reminders.Filter{PetIDs: splitCSV(petsCSV)}
	for _, s := range splitCSV(categoriesCSV) {
		c, err := reminders.ParseCategory(s)
		if err != nil {
			return reminders.Filter{}, err
		}
		f.Categories = append(f.Categories, c)
	}
	return f, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printAgenda(w io.Writer, s agenda.State) {
	fmt.Fprintf(w, "%s (%d reminders this month)\n\n", s.Selected, len(s.Visible))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tCATEGORY\tTITLE\tDONE")
	for _, r := range s.Day {
		done := ""
		if r.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.ScheduledAt.In(s.Loc).Format("15:04"), r.Category, r.Title, done)
	}
	_ = tw.Flush()

	days := make([]string, 0, len(s.Marks))
	for d, m := range s.Marks {
		if len(m.Dots) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	if len(days) > 0 {
		fmt.Fprintf(w, "\nmarked: %s\n", strings.Join(days, " "))
	}
}

// confirmPrompt pregunta Cancel / Delete por stdin. yes salta el prompt.
func confirmPrompt(in io.Reader, out io.Writer, yes bool) agenda.ConfirmFunc {
	return func(_ context.Context, r reminders.Reminder) confirm.Choice {
		if yes {
			return confirm.Delete
		}
		fmt.Fprintf(out, "Delete %q? [%s] ", r.Title, strings.Join(confirm.Labels, "/"))
		var answer string
		_, _ = fmt.Fscanln(in, &answer)
		return confirm.Parse(answer)
	}
}
