package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rhyrak/go-seating/internal/config"
)

func newRootCmd(fs afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seating",
		Short: "Exam seating planner",
		Long:  `Assigns exam candidates to rooms session by session and prints per-room attendance sheets.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default searches ./seating.*, $HOME/.seating, /etc/seating)")

	rootCmd.AddCommand(newGenerateCmd(fs))
	rootCmd.AddCommand(newValidateCmd(fs))
	return rootCmd
}

// addInputFlags registers the flags shared by commands that read a seating job.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("students", "s", "", "enrollment file (course_code, rollno)")
	cmd.Flags().StringP("timetable", "t", "", "exam timetable file (Date, Day, Morning, Evening)")
	cmd.Flags().StringP("rooms", "r", "", "room inventory file (Room No., Block, Exam Capacity)")
	cmd.Flags().StringP("names", "n", "", "roll number to name map (Roll, Name)")
	cmd.Flags().IntP("buffer", "b", 0, "seats withheld in every room")
	cmd.Flags().Bool("sparse", false, "seat at most half of every room")
	cmd.Flags().StringP("out", "o", "", "output directory for the table and attendance sheets")
	cmd.Flags().String("export", "", "file name of the assignment table")
	cmd.Flags().String("delimiter", "", "field delimiter of the input files")
	cmd.Flags().String("font", "", "UTF-8 TrueType font for attendance sheets")
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"students":  &cfg.Files.Students,
		"timetable": &cfg.Files.Timetable,
		"rooms":     &cfg.Files.Rooms,
		"names":     &cfg.Files.Names,
		"out":       &cfg.Output.Dir,
		"export":    &cfg.Output.ExportFile,
		"delimiter": &cfg.Files.Delimiter,
		"font":      &cfg.Output.Font,
	}
	for name, target := range stringFlags {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}
	if flags.Changed("buffer") {
		cfg.Seating.Buffer, _ = flags.GetInt("buffer")
	}
	if flags.Changed("sparse") {
		cfg.Seating.Sparse, _ = flags.GetBool("sparse")
	}
	return cfg, nil
}
