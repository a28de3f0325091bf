package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/randytsao24/tripmate/internal/validation"
)

type planOptions struct {
	from, to, date string
	days           int
	keyword        string
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build an itinerary around the arrival city",
		Long: `Without --days a single-day list of attractions, restaurants and cafes
near the first attraction found is printed. With --days the places are spread
over consecutive dates without repeats.`,
		Example: `  tripmate plan --to 부산
  tripmate plan --from 서울 --to 부산 --date 2025-01-01 --days 3
  tripmate plan --keyword 해운대`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(cmd.Context(), root.cfg)
			defer app.Close()
			ctx := cmd.Context()

			if opts.keyword != "" {
				return printJSON(cmd.OutOrStdout(), app.Planner.Recommend(ctx, opts.keyword))
			}
			if opts.to == "" {
				return validation.Fieldf("to", "--to is required unless --keyword is given")
			}

			date := opts.date
			if date == "" {
				date = time.Now().Format(validation.DashedDateLayout)
			}

			if cmd.Flags().Changed("days") {
				schedule, err := app.Planner.PlanMultiDay(ctx, opts.from, opts.to, date, opts.days)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), schedule)
			}

			parsed, err := validation.ParseDate("date", date)
			if err != nil {
				return err
			}
			schedule := app.Planner.Plan(ctx, opts.from, opts.to, parsed.Format(validation.DashedDateLayout))
			return printJSON(cmd.OutOrStdout(), schedule)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "Departure city, used in the title")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Arrival city")
	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "Start date (yyyy-MM-dd or yyyyMMdd), default today")
	cmd.Flags().IntVar(&opts.days, "days", 1, "Number of days for a multi-day plan")
	cmd.Flags().StringVarP(&opts.keyword, "keyword", "k", "", "Only list recommended attractions for a keyword")

	return cmd
}
