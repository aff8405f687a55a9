package access

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"access-analyzer/core/logger"
	"access-analyzer/core/tabular"
	"access-analyzer/feature/access/report"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportKeyHeader carries the bucket key of an archived report copy.
const ReportKeyHeader = "X-Report-Key"

// requestError marks a request that cannot be processed because inputs are
// missing, as opposed to inputs that are present but broken.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

// Handler handles HTTP requests for access analysis.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the access analysis routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/access")
	group.Post("/analysis", h.HandleAnalysis)
	group.Post("/analysis/report", h.HandleReport)
	group.Post("/analysis/export", h.HandleExport)
	group.Get("/inputs", h.HandleInputs)
}

// HandleAnalysis runs a full analysis over the two uploaded exports.
// @Summary Analyze Access Exports
// @Description Reconciles the membership export against the master access export and returns summary stats, users with extra access, group records and distributions. Inputs are uploaded files, or bucket objects with source=storage.
// @Tags access
// @Accept mpfd
// @Produce json
// @Param memberships formData file false "Membership export (user, main group, additional groups)"
// @Param master formData file false "Master access export (subject, access)"
// @Param source query string false "Set to 'storage' to read inputs from the bucket"
// @Param memberships_key query string false "Bucket key of the membership export (source=storage)"
// @Param master_key query string false "Bucket key of the master export (source=storage)"
// @Success 200 {object} models.Analysis "Analysis result"
// @Failure 400 {object} map[string]string "Missing inputs"
// @Failure 422 {object} map[string]string "Undecodable or malformed export"
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /access/analysis [post]
func (h *Handler) HandleAnalysis(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	memberships, master, cleanup, err := h.exportSources(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	defer cleanup()

	analysis, err := h.service.Analyze(memberships, master)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(analysis)
}

// HandleReport renders the extra access report as a CSV download.
// @Summary Download Extra Access Report
// @Description Runs the analysis and returns the extra access report as a CSV attachment. With archive=true a timestamped copy is stored in the bucket and its key reported in the X-Report-Key header.
// @Tags access
// @Accept mpfd
// @Produce plain
// @Param memberships formData file false "Membership export (user, main group, additional groups)"
// @Param master formData file false "Master access export (subject, access)"
// @Param archive query boolean false "Store a copy of the report in the bucket"
// @Param source query string false "Set to 'storage' to read inputs from the bucket"
// @Param memberships_key query string false "Bucket key of the membership export (source=storage)"
// @Param master_key query string false "Bucket key of the master export (source=storage)"
// @Success 200 {string} string "CSV report"
// @Failure 400 {object} map[string]string "Missing inputs"
// @Failure 422 {object} map[string]string "Undecodable or malformed export"
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /access/analysis/report [post]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	memberships, master, cleanup, err := h.exportSources(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	defer cleanup()

	analysis, err := h.service.Analyze(memberships, master)
	if err != nil {
		return h.fail(c, l, err)
	}

	data, err := h.service.ExtraReportCSV(analysis.ExtraRecords)
	if err != nil {
		return h.fail(c, l, err)
	}

	if c.QueryBool("archive") {
		key, err := h.service.ArchiveReport(c.Context(), report.ExtraReportName, data)
		if err != nil {
			return h.fail(c, l, err)
		}
		c.Set(ReportKeyHeader, key)
	}

	c.Attachment(report.ExtraReportName)
	return c.Send(data)
}

// HandleExport renders the filtered access export as a CSV download.
// @Summary Download Filtered Access Export
// @Description Lists every user holding any of the selected accesses, with their groups and accesses, as a CSV attachment. Accesses are passed as repeated fields or one comma separated list.
// @Tags access
// @Accept mpfd
// @Produce plain
// @Param memberships formData file false "Membership export (user, main group, additional groups)"
// @Param master formData file false "Master access export (subject, access)"
// @Param accesses query string false "Accesses to filter on"
// @Param source query string false "Set to 'storage' to read inputs from the bucket"
// @Param memberships_key query string false "Bucket key of the membership export (source=storage)"
// @Param master_key query string false "Bucket key of the master export (source=storage)"
// @Success 200 {string} string "CSV export"
// @Failure 400 {object} map[string]string "Missing inputs or empty selection"
// @Failure 422 {object} map[string]string "Undecodable or malformed export"
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /access/analysis/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	memberships, master, cleanup, err := h.exportSources(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	defer cleanup()

	data, err := h.service.FilteredExportCSV(memberships, master, selectedAccesses(c))
	if err != nil {
		return h.fail(c, l, err)
	}

	c.Attachment(report.FilteredExportName)
	return c.Send(data)
}

// HandleInputs lists the export files waiting in the storage drop zone.
// @Summary List Incoming Exports
// @Description Lists the export files currently in the bucket's incoming prefix, ready to be analyzed with source=storage.
// @Tags access
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Drop zone listing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /access/inputs [get]
func (h *Handler) HandleInputs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	inputs, err := h.service.ListInputs(c.Context())
	if err != nil {
		l.Error("Input listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"inputs": inputs,
		"count":  len(inputs),
	})
}

// exportSources resolves the two export inputs of a request: uploaded files
// by default, bucket objects when source=storage.
func (h *Handler) exportSources(c *fiber.Ctx) (io.Reader, io.Reader, func(), error) {
	if strings.EqualFold(c.FormValue("source"), "storage") {
		membershipsKey := c.FormValue("memberships_key")
		masterKey := c.FormValue("master_key")
		if membershipsKey == "" || masterKey == "" {
			return nil, nil, nil, &requestError{msg: "memberships_key and master_key are required with source=storage"}
		}

		membershipData, masterData, err := h.service.fetchInputs(c.Context(), membershipsKey, masterKey)
		if err != nil {
			return nil, nil, nil, err
		}
		return bytes.NewReader(membershipData), bytes.NewReader(masterData), func() {}, nil
	}

	memberships, err := openUpload(c, "memberships")
	if err != nil {
		return nil, nil, nil, err
	}
	master, err := openUpload(c, "master")
	if err != nil {
		memberships.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		memberships.Close()
		master.Close()
	}
	return memberships, master, cleanup, nil
}

func openUpload(c *fiber.Ctx, field string) (multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, &requestError{msg: fmt.Sprintf("upload %q is required", field)}
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", field, err)
	}
	return file, nil
}

// selectedAccesses collects the accesses of an export request, accepting
// repeated fields and comma separated lists in query and form alike.
func selectedAccesses(c *fiber.Ctx) []string {
	var raw []string
	for _, v := range c.Context().QueryArgs().PeekMulti("accesses") {
		raw = append(raw, string(v))
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		raw = append(raw, form.Value["accesses"]...)
	}
	if len(raw) == 0 {
		if v := c.FormValue("accesses"); v != "" {
			raw = append(raw, v)
		}
	}

	var selected []string
	for _, value := range raw {
		for _, item := range strings.Split(value, ",") {
			selected = append(selected, strings.TrimSpace(item))
		}
	}
	return selected
}

// fail maps domain errors onto HTTP statuses: missing inputs are 400s,
// broken exports 422s, unreachable storage 502.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var (
		reqErr    *requestError
		selErr    *report.EmptySelectionError
		formatErr *tabular.FormatError
		parseErr  *tabular.ParseError
		fetchErr  *FetchError
	)

	switch {
	case errors.As(err, &reqErr), errors.As(err, &selErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &formatErr), errors.As(err, &parseErr):
		l.Warn("Rejected export input", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fetchErr):
		l.Error("Storage fetch failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
