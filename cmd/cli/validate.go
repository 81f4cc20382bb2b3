package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rhyrak/go-seating/internal/csvio"
	"github.com/rhyrak/go-seating/internal/scheduler"
)

func newValidateCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Seat all sessions and report shortfalls without writing anything",
		Long:  `Load every input file, reporting all broken files at once, seat the timetable and print the checks. Exits non-zero when a course could not be fully seated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, fs)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, fs afero.Fs) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	inputs, err := csvio.LoadFiles(fs, filesOf(cfg), formatOf(cfg))
	if err != nil {
		return err
	}

	buffer, sparse := cfg.Seating.Buffer, cfg.Seating.Sparse
	results, err := scheduler.Run(inputs.Timetable, inputs.Roster, inputs.Rooms, buffer, sparse)
	if err != nil {
		return err
	}
	valid, report := scheduler.Validate(results, inputs.Roster, inputs.Rooms, buffer, sparse)

	out := cmd.OutOrStdout()
	csvio.PrintAssignments(out, results)
	fmt.Fprintln(out)
	printVerdict(out, valid, report)
	csvio.PrintShortfalls(out, results)

	if !valid {
		return fmt.Errorf("%d courses could not be fully seated", len(scheduler.Shortfalls(results)))
	}
	return nil
}

func printVerdict(out io.Writer, valid bool, report string) {
	if valid {
		fmt.Fprintln(out, "Passed all checks")
	} else {
		fmt.Fprintln(out, "Seating is incomplete:")
	}
	fmt.Fprint(out, report)
}
