package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rhyrak/go-seating/internal/cache"
	"github.com/rhyrak/go-seating/internal/config"
	"github.com/rhyrak/go-seating/internal/csvio"
	"github.com/rhyrak/go-seating/internal/generator"
	"github.com/rhyrak/go-seating/internal/store"
)

type server struct {
	cfg  *config.Config
	fs   afero.Fs
	runs *store.Store
	gen  *generator.Generator
	log  *zap.Logger

	// jobs tracks background generations
	jobs sync.WaitGroup
}

func newServer(cfg *config.Config, fs afero.Fs, runs *store.Store, c cache.Cache, log *zap.Logger) *server {
	format := csvio.Format{Delimiter: cfg.Files.DelimiterRune(), TitleRows: cfg.Files.TitleRows}
	return &server{
		cfg:  cfg,
		fs:   fs,
		runs: runs,
		gen:  generator.New(fs, format, cfg.Output.ExportFile, c, log.Named("generator")),
		log:  log,
	}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig()))

	r.GET("/", s.handleIndex)
	r.POST("/submit", s.handlePostSubmit)
	r.GET("/runs", s.handleGetRuns)
	r.GET("/runs/:id", s.handleGetRun)
	r.DELETE("/runs/:id", s.handleDeleteRun)
	r.GET("/download/*filename", s.handleDownload)
	return r
}

func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

// generate runs one job in the background and records its outcome.
func (s *server) generate(id string, req generator.Request) {
	defer s.jobs.Done()
	ctx := context.Background()
	log := s.log.With(zap.String("run", id))

	report, err := s.gen.Generate(ctx, req)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		if err := s.runs.Fail(ctx, id, err); err != nil {
			log.Error("unable to record failure", zap.Error(err))
		}
		return
	}
	if err := s.runs.Complete(ctx, id, report.Table, summarize(report)); err != nil {
		log.Error("unable to record result", zap.Error(err))
	}
}

func summarize(report *generator.Report) string {
	var b strings.Builder
	b.WriteString(report.Validation)
	for _, sf := range report.Shortfalls {
		fmt.Fprintf(&b, "Not enough rooms for course %s on %s %s with %d students remaining.\n", sf.Course, sf.Date, sf.Session, sf.Unplaced)
	}
	if len(report.Unknown) > 0 {
		fmt.Fprintf(&b, "Roll numbers without a name: %d\n", len(report.Unknown))
	}
	fmt.Fprintf(&b, "Attendance sheets: %d\n", len(report.Sheets))
	return b.String()
}
