package main

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/go-seating/internal/cache"
	"github.com/rhyrak/go-seating/internal/config"
	"github.com/rhyrak/go-seating/internal/csvio"
	"github.com/rhyrak/go-seating/internal/generator"
	"github.com/rhyrak/go-seating/internal/logger"
)

func newGenerateCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Seat all sessions and write attendance sheets",
		Long:  `Seat every session of the timetable, export the assignment table and render one attendance sheet per room and session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, fs)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func runGenerate(cmd *cobra.Command, fs afero.Fs) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New("cli", cfg.General.Debug)
	defer log.Sync()

	req, err := generator.ReadRequest(fs, filesOf(cfg))
	if err != nil {
		return err
	}
	req.Buffer = cfg.Seating.Buffer
	req.Sparse = cfg.Seating.Sparse
	req.OutputDir = cfg.Output.Dir

	g := generator.New(fs, formatOf(cfg), cfg.Output.ExportFile, newCache(cfg, log), log)
	if cfg.Output.Font != "" {
		font, err := afero.ReadFile(fs, cfg.Output.Font)
		if err != nil {
			return fmt.Errorf("read sheet font: %w", err)
		}
		g.WithFont(font)
	}

	start := time.Now()
	report, err := g.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	csvio.PrintAssignments(out, report.Results)
	fmt.Fprintln(out)
	printVerdict(out, report.Valid, report.Validation)
	csvio.PrintShortfalls(out, report.Results)
	if len(report.Unknown) > 0 {
		fmt.Fprintf(out, "Roll numbers without a name: %d\n", len(report.Unknown))
	}

	fmt.Fprintf(out, "Buffer: %d  Sparse: %t\n", req.Buffer, req.Sparse)
	fmt.Fprintf(out, "Timer: %f ms\n", float64(elapsed.Microseconds())/1000.0)
	fmt.Fprintln(out, "Exported output to: "+report.TablePath)
	fmt.Fprintf(out, "Attendance sheets: %d under %s\n", len(report.Sheets), cfg.Output.Dir)
	return nil
}

func filesOf(cfg *config.Config) csvio.Files {
	return csvio.Files{
		Students:  cfg.Files.Students,
		Timetable: cfg.Files.Timetable,
		Rooms:     cfg.Files.Rooms,
		Names:     cfg.Files.Names,
	}
}

func formatOf(cfg *config.Config) csvio.Format {
	return csvio.Format{Delimiter: cfg.Files.DelimiterRune(), TitleRows: cfg.Files.TitleRows}
}

func newCache(cfg *config.Config, log *zap.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		return nil
	}
	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if rdb == nil {
		log.Warn("redis unreachable, running without result cache", zap.String("addr", cfg.Redis.Addr))
		return nil
	}
	return cache.NewRedisCache(rdb, cfg.Redis.TTL)
}
