package cli

import (
	"github.com/spf13/cobra"

	"github.com/randytsao24/tripmate/internal/models"
)

type searchOptions struct {
	from, to, date, time string
	page, size           int
	text                 bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search bus and rail options between two cities",
		Example: `  tripmate search --from 서울 --to 부산 --date 2025-01-01
  tripmate search -f 서울 -t 부산 -d 20250101 --time 09:00 --page 1 --size 10
  tripmate search -f 서울 -t 부산 -d 20250101 --text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(cmd.Context(), root.cfg)
			defer app.Close()

			req := models.TransportRequest{
				DepartureCity: opts.from,
				ArrivalCity:   opts.to,
				Date:          opts.date,
				DepartureTime: opts.time,
			}

			if opts.text {
				result, err := app.Transport.Recommend(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			}

			page, err := app.Transport.RecommendPage(cmd.Context(), req, opts.page, opts.size)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "Departure city")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Arrival city")
	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "Travel date (yyyy-MM-dd or yyyyMMdd)")
	cmd.Flags().StringVar(&opts.time, "time", "", "Earliest departure time (HH:mm)")
	cmd.Flags().IntVar(&opts.page, "page", 0, "Page number, from 0")
	cmd.Flags().IntVar(&opts.size, "size", 5, "Options per page")
	cmd.Flags().BoolVar(&opts.text, "text", false, "Print display lines grouped by mode instead of a page")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("date")

	return cmd
}
