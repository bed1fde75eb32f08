package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"placify-resume/internal/adapter/repository"
	"placify-resume/internal/model"
)

// ExperiencesHandler serves the shared interview experiences feed.
type ExperiencesHandler struct {
	repo *repository.ExperiencesRepo
}

func NewExperiencesHandler(repo *repository.ExperiencesRepo) *ExperiencesHandler {
	return &ExperiencesHandler{repo: repo}
}

func (h *ExperiencesHandler) Register(app *fiber.App) {
	app.Post("/experiences", h.Create)
	app.Get("/experiences", h.List)
	app.Get("/experiences/stats", h.Stats)
	app.Get("/experiences/:id", h.Get)
}

func (h *ExperiencesHandler) Create(c *fiber.Ctx) error {
	var exp model.InterviewExperience
	if err := c.BodyParser(&exp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid payload",
		})
	}

	if v := model.ValidateExperience(&exp); !v.Valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "All required fields must be provided",
			"errors":  v.Errors,
		})
	}

	exp.ID = uuid.New()
	exp.IsPublic = true
	exp.IsApproved = true

	if err := h.repo.Create(c.Context(), &exp); err != nil {
		slog.Error("create experience failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error creating interview experience",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Interview experience submitted successfully! Thank you for sharing.",
		"data":    exp,
	})
}

func (h *ExperiencesHandler) List(c *fiber.Ctx) error {
	params := repository.ListParams{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 10),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	}

	items, pagination, err := h.repo.List(c.Context(), params)
	if err != nil {
		slog.Error("list experiences failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching interview experiences",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       items,
		"pagination": pagination,
	})
}

func (h *ExperiencesHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid id",
		})
	}

	exp, err := h.repo.Get(c.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Interview experience not found",
			})
		}
		slog.Error("get experience failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching interview experience",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": exp})
}

func (h *ExperiencesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.repo.Stats(c.Context())
	if err != nil {
		slog.Error("experience stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching interview stats",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
