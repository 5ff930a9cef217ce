package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mapbox-community/mts-go/pkg/mts"
)

// ActivityCommand returns the activity report command.
func ActivityCommand() *cobra.Command {
	var flags commonFlags
	var sortBy, orderBy, start string
	var limit int
	var all bool

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Report tileset request activity",
		Long: "Report per-tileset request counts for the account over the " +
			"last 30 days. Results are paginated; --all follows pagination " +
			"until the report is exhausted.",
		Example: `  mts activity --sortby requests --limit 100
  mts activity --all --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			opts := mts.ActivityOptions{
				SortBy:  sortBy,
				OrderBy: orderBy,
				Limit:   limit,
				Start:   start,
			}

			var entries []mts.ActivityEntry
			for {
				page, err := client.ListActivity(cmd.Context(), opts)
				if err != nil {
					return translateError(err, "fetch activity")
				}
				entries = append(entries, page.Entries...)
				if !all || page.Next == "" {
					break
				}
				opts.Start = page.Next
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.ID, strconv.FormatInt(e.Requests, 10), e.Modified})
			}
			return printRows(cfg, []string{"TILESET", "REQUESTS", "MODIFIED"}, rows, entries)
		},
	}

	addCommonFlags(cmd, &flags)
	cmd.Flags().StringVar(&sortBy, "sortby", "", "Sort field (requests, modified)")
	cmd.Flags().StringVar(&orderBy, "orderby", "", "Sort order (asc, desc)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (1-500)")
	cmd.Flags().StringVar(&start, "start", "", "Pagination key from a previous response")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination and return all entries")
	return cmd
}
