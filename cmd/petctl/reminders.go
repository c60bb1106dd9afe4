package main

import (
	"fmt"
	"os"
	"time"

	"pet-tracker/internal/agenda"
	"pet-tracker/internal/domain/reminders"

	"github.com/spf13/cobra"
)

func init() {
	remindersCmd := &cobra.Command{Use: "reminders", Short: "Reminder operations"}

	// add
	var petID, title, desc, category, at string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			loc, err := location()
			if err != nil {
				return err
			}

			when, err := reminders.ParseScheduled(at, loc)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			in := reminders.SaveInput{PetID: &petID, Title: &title, ScheduledAt: &when}
			if desc != "" {
				in.Description = &desc
			}
			if category != "" {
				cat, err := reminders.ParseCategory(category)
				if err != nil {
					return err
				}
				in.Category = &cat
			}

			ctrl := agenda.NewController(c, nil, reminders.DateString(when, loc), loc)
			ctrl.OpenCreate()
			if err := ctrl.Save(cmd.Context(), in); err != nil {
				return err
			}
			printAgenda(os.Stdout, ctrl.State())
			return nil
		},
	}
	addCmd.Flags().StringVarP(&petID, "pet", "p", "", "Pet ID (required)")
	addCmd.Flags().StringVarP(&title, "title", "t", "", "Title (required)")
	addCmd.Flags().StringVar(&desc, "desc", "", "Description")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "consultation|medication|bath|other (default other)")
	addCmd.Flags().StringVar(&at, "at", "", "When: RFC3339 or YYYY-MM-DDTHH:MM (required)")
	_ = addCmd.MarkFlagRequired("pet")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("at")
	remindersCmd.AddCommand(addCmd)

	// done / undo
	for _, tc := range []struct {
		use       string
		short     string
		completed bool
	}{
		{"done REMINDER_ID", "Mark a reminder as completed", true},
		{"undo REMINDER_ID", "Mark a reminder as pending", false},
	} {
		completed := tc.completed
		remindersCmd.AddCommand(&cobra.Command{
			Use:   tc.use,
			Short: tc.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				r, err := c.SetCompleted(cmd.Context(), args[0], completed)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "%s completed=%v\n", r.ID, r.Completed)
				return nil
			},
		})
	}

	// rm
	var date string
	var yes bool
	rmCmd := &cobra.Command{
		Use:   "rm REMINDER_ID",
		Short: "Delete a reminder (asks Cancel/Delete unless --yes)",
		Args:  cobra.ExactArgs(1),
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

			ctrl := agenda.NewController(c, confirmPrompt(os.Stdin, os.Stdout, yes), date, loc)
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return err
			}
			removed, err := ctrl.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(os.Stdout, "cancelled")
				return nil
			}
			fmt.Fprintf(os.Stdout, "deleted %s\n", args[0])
			return nil
		},
	}
	rmCmd.Flags().StringVarP(&date, "date", "d", "", "Any day of the reminder's month YYYY-MM-DD (default today)")
	rmCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	remindersCmd.AddCommand(rmCmd)

	rootCmd.AddCommand(remindersCmd)
}
