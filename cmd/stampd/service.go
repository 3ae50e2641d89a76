package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mhpenta/stampgen"
)

// Service exposes the batch workflow over HTTP. One endpoint accepts a
// multipart form describing the batch and responds with the packed
// archive as a download.
type Service struct {
	cfg  *Config
	e    *echo.Echo
	orch *stampgen.Orchestrator
}

func NewService(cfg *Config, orch *stampgen.Orchestrator) *Service {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Service{cfg: cfg, e: e, orch: orch}

	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/stamps", s.handleGenerate)

	return s
}

// Start blocks serving HTTP until the server stops.
func (s *Service) Start() error {
	return s.e.Start(":" + s.cfg.Server.Port)
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate runs one sticker batch.
//
// Form fields: count (int), description, texts (newline separated),
// style, consistency (bool), image (optional multipart file).
// Responds with the zip archive as an attachment; per-item outcome
// counts ride along in response headers.
func (s *Service) handleGenerate(c echo.Context) error {
	req, err := s.parseRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	archive, results, err := s.orch.RunAndPack(c.Request().Context(), req, s.stickerConfig())
	switch {
	case errors.Is(err, stampgen.ErrInvalidRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, stampgen.ErrEmptyBatch):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "every stamp in the batch failed")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h := c.Response().Header()
	h.Set("X-Stamps-Requested", strconv.Itoa(req.Count))
	h.Set("X-Stamps-Succeeded", strconv.Itoa(stampgen.CountSuccesses(results)))
	h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", stampgen.DefaultArchiveName))

	return c.Blob(http.StatusOK, "application/zip", archive)
}

func (s *Service) parseRequest(c echo.Context) (stampgen.BatchRequest, error) {
	var req stampgen.BatchRequest

	countStr := c.FormValue("count")
	if countStr == "" {
		return req, errors.New("count is required")
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return req, fmt.Errorf("count must be an integer: %v", err)
	}
	req.Count = count

	req.Description = c.FormValue("description")
	req.StylePrompt = c.FormValue("style")
	req.PreserveConsistency, _ = strconv.ParseBool(c.FormValue("consistency"))

	if texts := c.FormValue("texts"); texts != "" {
		for _, line := range strings.Split(texts, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				req.Texts = append(req.Texts, line)
			}
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return req, fmt.Errorf("opening uploaded image: %v", err)
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return req, fmt.Errorf("reading uploaded image: %v", err)
		}
		req.Reference = &stampgen.InputImage{
			Data:     data,
			MIMEType: stampgen.GetMIMEType(file.Filename),
		}
	}

	return req, nil
}

func (s *Service) stickerConfig() *stampgen.StickerConfig {
	cfg := stampgen.DefaultConfig()
	if s.cfg.Generator.Model != "" {
		cfg = cfg.WithModel(stampgen.Model(s.cfg.Generator.Model))
	}
	return cfg
}
