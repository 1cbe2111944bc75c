package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/minerguide/pilotd/pkg/pilot"
	"github.com/minerguide/pilotd/pkg/roster"
	"github.com/spf13/cobra"
)

var refreshAll bool

var refreshCmd = &cobra.Command{
	Use:   "refresh [pilot-id...]",
	Short: "Refresh pilots from the EVE API and save them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !refreshAll && len(args) == 0 {
			return fmt.Errorf("name pilot ids or use --all")
		}

		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		r := mustOpenRoster()
		failures := runRefresh(context.Background(), r, ids)
		writeRefreshTable(os.Stdout, r, ids, failures)

		if len(failures) != 0 {
			return fmt.Errorf("%d of %d refreshes failed", len(failures), refreshCount(r, ids))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().BoolVar(&refreshAll, "all", false, "refresh every pilot")
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pilot id '%s'", arg)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// runRefresh refreshes ids, or every pilot when ids is empty.
func runRefresh(ctx context.Context, r *roster.Roster, ids []int) map[int]error {
	if len(ids) == 0 {
		return r.RefreshAll(ctx)
	}

	failures := make(map[int]error)
	for _, id := range ids {
		if err := r.Refresh(ctx, id); err != nil {
			failures[id] = err
		}
	}

	return failures
}

func refreshCount(r *roster.Roster, ids []int) int {
	if len(ids) == 0 {
		return len(r.List())
	}
	return len(ids)
}

func writeRefreshTable(w io.Writer, r *roster.Roster, ids []int, failures map[int]error) {
	if len(ids) == 0 {
		for _, p := range r.List() {
			ids = append(ids, p.ID())
		}
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		name := ""
		if p, ok := r.Get(id); ok {
			name = p.Name()
		}

		err := failures[id]
		message := ""
		if err != nil {
			message = err.Error()
		}

		rows = append(rows, []string{strconv.Itoa(id), name, refreshResult(err), message})
	}

	writeTable(w, []string{"pilot_id", "name", "result", "message"}, rows)
}

func refreshResult(err error) string {
	if errors.Is(err, roster.ErrUnknownPilot) {
		return "unknown pilot"
	}

	return pilot.RefreshStateOf(err).String()
}
