package main

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rhyrak/go-seating/internal/generator"
	"github.com/rhyrak/go-seating/internal/store"
)

func (s *server) handleIndex(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"service": "seating",
		"endpoints": []string{
			"POST /submit",
			"GET /runs",
			"GET /runs/:id",
			"DELETE /runs/:id",
			"GET /download/*filename",
		},
	})
}

func (s *server) handlePostSubmit(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		s.log.Warn("error reading form", zap.Error(err))
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	if form.File["students_file"] == nil || form.File["schedule_file"] == nil || form.File["rooms_file"] == nil {
		ctx.String(http.StatusBadRequest, "missing file(s): students_file? schedule_file? rooms_file?")
		return
	}

	buffer := 0
	if v := strings.TrimSpace(ctx.PostForm("buffer")); v != "" {
		buffer, err = strconv.Atoi(v)
		if err != nil || buffer < 0 {
			ctx.String(http.StatusBadRequest, "buffer must be a non-negative integer")
			return
		}
	}

	run, err := s.runs.Create(ctx, buffer, ctx.PostForm("seating") == "sparse")
	if err != nil {
		s.log.Error("unable to create run", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	req := generator.Request{
		Buffer:    buffer,
		Sparse:    run.Sparse,
		OutputDir: filepath.Join(s.cfg.Output.Dir, run.ID),
	}
	uploads := []struct {
		field  string
		target *[]byte
	}{
		{"students_file", &req.Students},
		{"schedule_file", &req.Timetable},
		{"rooms_file", &req.Rooms},
		{"student_roll_map", &req.Names},
	}
	for _, u := range uploads {
		if form.File[u.field] == nil {
			continue
		}
		*u.target, err = s.saveUpload(run.ID, form.File[u.field][0])
		if err != nil {
			s.log.Error("unable to store upload", zap.String("field", u.field), zap.Error(err))
			if err := s.runs.Fail(ctx, run.ID, err); err != nil {
				s.log.Error("unable to record failure", zap.String("run", run.ID), zap.Error(err))
			}
			ctx.Status(http.StatusInternalServerError)
			return
		}
	}

	s.log.Info("generating seating", zap.String("run", run.ID), zap.Int("buffer", buffer), zap.Bool("sparse", run.Sparse))
	s.jobs.Add(1)
	go s.generate(run.ID, req)

	ctx.JSON(http.StatusOK, gin.H{
		"id": run.ID,
	})
}

// saveUpload keeps a copy of the uploaded file under the upload dir and returns its content.
func (s *server) saveUpload(id string, fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.cfg.Output.UploadDir, id)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(s.fs, filepath.Join(dir, filepath.Base(fh.Filename)), data, 0o644); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *server) handleGetRuns(ctx *gin.Context) {
	runs, err := s.runs.List(ctx)
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"runs": runs,
	})
}

func (s *server) handleGetRun(ctx *gin.Context) {
	run, err := s.runs.Get(ctx, ctx.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"run":  run,
		"data": run.Data,
	})
}

func (s *server) handleDeleteRun(ctx *gin.Context) {
	id := ctx.Param("id")
	err := s.runs.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	if err := s.fs.RemoveAll(filepath.Join(s.cfg.Output.Dir, id)); err != nil {
		s.log.Warn("unable to remove run output", zap.String("run", id), zap.Error(err))
	}
	ctx.JSON(http.StatusOK, gin.H{
		"id": id,
	})
}

// handleDownload serves a generated file. Paths are resolved inside the output root.
func (s *server) handleDownload(ctx *gin.Context) {
	name := path.Clean("/" + ctx.Param("filename"))
	if name == "/" {
		ctx.Status(http.StatusNotFound)
		return
	}
	full := filepath.Join(s.cfg.Output.Dir, filepath.FromSlash(name))

	data, err := afero.ReadFile(s.fs, full)
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(full)) {
	case ".pdf":
		contentType = "application/pdf"
	case ".csv":
		contentType = "text/csv"
	}
	ctx.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filepath.Base(full)))
	ctx.Data(http.StatusOK, contentType, data)
}
