package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	insightsCmd := &cobra.Command{
		Use:   "insights PET_ID",
		Short: "Show derived weight, activity and health indicators for a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			in, err := c.Insights(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "weight:   %s (%+.1f kg)\n", in.WeightTrend, in.WeightChange)
			fmt.Fprintf(os.Stdout, "activity: %s (%.1f km this week)\n", in.ActivityLevel, in.WeeklyKm)
			fmt.Fprintf(os.Stdout, "health:   %s (%d days since last visit)\n", in.HealthStatus, in.DaysSinceVisit)
			if in.NextEvent != nil {
				fmt.Fprintf(os.Stdout, "next:     %s in %d days\n", in.NextEvent.Type, in.NextEvent.DaysLeft)
			}
			return nil
		},
	}
	rootCmd.AddCommand(insightsCmd)
}
