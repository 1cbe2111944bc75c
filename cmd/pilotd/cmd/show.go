package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/minerguide/pilotd/pkg/implant"
	"github.com/minerguide/pilotd/pkg/pilot"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <pilot-id>",
	Short: "Show a pilot's skills and implants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pilot id '%s'", args[0])
		}

		p, ok := mustOpenRoster().Get(id)
		if !ok {
			return fmt.Errorf("no pilot %d", id)
		}

		writePilot(os.Stdout, p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func writePilot(w io.Writer, p *pilot.Pilot) {
	snapshot := p.Clone()
	_, _ = fmt.Fprintf(w, "%s (%d)\n", p.Name(), p.ID())

	skills := snapshot.Skills()
	skillIDs := make([]int, 0, len(skills))
	for id := range skills {
		skillIDs = append(skillIDs, id)
	}
	sort.Ints(skillIDs)

	skillRows := make([][]string, 0, len(skillIDs))
	for _, id := range skillIDs {
		skillRows = append(skillRows, []string{strconv.Itoa(id), pilot.SkillName(id), strconv.Itoa(skills[id])})
	}
	writeTable(w, []string{"skill_id", "skill", "level"}, skillRows)

	var implantRows [][]string
	for i, imp := range snapshot.Implants() {
		implantRows = append(implantRows, []string{strconv.Itoa(implant.Slots[i]), strconv.Itoa(imp.ID), imp.Name})
	}
	writeTable(w, []string{"slot", "implant_id", "implant"}, implantRows)
}
