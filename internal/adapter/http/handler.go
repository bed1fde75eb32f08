package http

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"placify-resume/internal/usecase"
)

// BuilderFactory creates the builder (and its backing snapshot store) for
// one user session.
type BuilderFactory func(userID uuid.UUID) *usecase.Builder

// Handler exposes the resume builder over HTTP. Sessions are keyed by the
// X-User-ID header; a fresh id is issued when the header is absent.
type Handler struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*usecase.Builder
	factory  BuilderFactory
	exporter *usecase.Exporter
}

func NewHandler(factory BuilderFactory, exporter *usecase.Exporter) *Handler {
	return &Handler{
		sessions: map[uuid.UUID]*usecase.Builder{},
		factory:  factory,
		exporter: exporter,
	}
}

// Register mounts the resume routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/resume", h.GetResume)
	app.Put("/resume/personal", h.UpdatePersonal)
	app.Put("/resume/theme", h.SetTheme)
	app.Post("/resume/clear", h.ClearAll)
	app.Get("/resume/validation", h.Validate)
	app.Post("/resume/export", h.Export)

	app.Post("/resume/skills", h.AddSkill)
	app.Delete("/resume/skills/:name", h.RemoveSkill)

	app.Post("/resume/:list/entries", h.AddEntry)
	app.Patch("/resume/:list/entries/:id", h.UpdateEntry)
	app.Patch("/resume/:list/entries/:id/current", h.SetCurrent)
	app.Put("/resume/projects/:id/technologies", h.SetTechnologies)
	app.Delete("/resume/:list/entries/:id", h.RemoveEntry)
}

// session resolves the caller's builder, creating it on first use. The
// session id is echoed back so new callers can keep it.
func (h *Handler) session(c *fiber.Ctx) (*usecase.Builder, error) {
	userID := uuid.New()
	if raw := c.Get("X-User-ID"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid X-User-ID")
		}
		userID = parsed
	}
	c.Set("X-User-ID", userID.String())

	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.sessions[userID]
	if !ok {
		b = h.factory(userID)
		h.sessions[userID] = b
	}
	return b, nil
}

func listName(c *fiber.Ctx) (usecase.ListName, error) {
	switch c.Params("list") {
	case "education":
		return usecase.ListEducation, nil
	case "experience":
		return usecase.ListExperience, nil
	case "projects":
		return usecase.ListProjects, nil
	}
	return "", fiber.NewError(fiber.StatusNotFound, "unknown list")
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"document":   b.Document(),
		"validation": b.Validation(),
		"theme":      b.Theme(),
	})
}

func (h *Handler) UpdatePersonal(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	var fields map[string]string
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	b.UpdatePersonal(fields)
	return c.JSON(fiber.Map{"document": b.Document(), "validation": b.Validation()})
}

func (h *Handler) SetTheme(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	switch usecase.Theme(req.Theme) {
	case usecase.ThemeLight, usecase.ThemeDark:
		b.SetTheme(usecase.Theme(req.Theme))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown theme"})
	}
	return c.JSON(fiber.Map{"theme": b.Theme()})
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	list, err := listName(c)
	if err != nil {
		return err
	}
	var id string
	switch list {
	case usecase.ListEducation:
		id = b.AddEducation()
	case usecase.ListExperience:
		id = b.AddExperience()
	case usecase.ListProjects:
		id = b.AddProject()
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	list, err := listName(c)
	if err != nil {
		return err
	}
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	id := c.Params("id")
	switch list {
	case usecase.ListEducation:
		b.UpdateEducation(id, req.Field, req.Value)
	case usecase.ListExperience:
		b.UpdateExperience(id, req.Field, req.Value)
	case usecase.ListProjects:
		b.UpdateProject(id, req.Field, req.Value)
	}
	return c.JSON(fiber.Map{"document": b.Document(), "validation": b.Validation()})
}

func (h *Handler) SetCurrent(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	list, err := listName(c)
	if err != nil {
		return err
	}
	var req struct {
		Current bool `json:"current"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	b.SetCurrent(list, c.Params("id"), req.Current)
	return c.JSON(fiber.Map{"document": b.Document()})
}

func (h *Handler) SetTechnologies(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	var req struct {
		Technologies []string `json:"technologies"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	b.SetProjectTechnologies(c.Params("id"), req.Technologies)
	return c.JSON(fiber.Map{"document": b.Document()})
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	list, err := listName(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	switch list {
	case usecase.ListEducation:
		b.RemoveEducation(id)
	case usecase.ListExperience:
		b.RemoveExperience(id)
	case usecase.ListProjects:
		b.RemoveProject(id)
	}
	return c.JSON(fiber.Map{"document": b.Document(), "validation": b.Validation()})
}

func (h *Handler) AddSkill(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	b.AddSkill(req.Name)
	return c.JSON(fiber.Map{"skills": b.Document().Skills})
}

func (h *Handler) RemoveSkill(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	b.RemoveSkill(c.Params("name"))
	return c.JSON(fiber.Map{"skills": b.Document().Skills})
}

func (h *Handler) ClearAll(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	b.ClearAll()
	return c.JSON(fiber.Map{"document": b.Document()})
}

func (h *Handler) Validate(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(b.Validation())
}

// Export validates, then renders and paginates the current document into a
// downloadable PDF. An invalid document returns the full error map and
// never reaches the export step.
func (h *Handler) Export(c *fiber.Ctx) error {
	b, err := h.session(c)
	if err != nil {
		return err
	}
	var req struct {
		FileName string `json:"fileName"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}

	if v := b.Validation(); !v.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Please fix the highlighted fields before generating your resume",
			"errors":  v.Errors,
		})
	}

	res, err := h.exporter.Export(c.Context(), b, req.FileName)
	if err != nil {
		var exportErr *usecase.ExportError
		if errors.As(err, &exportErr) {
			slog.Error("export failed", "error", exportErr.Err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": exportErr.Message})
		}
		return err
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	return c.Send(res.PDF)
}
