package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recruitops/pipeline-api/internal/models"
	"recruitops/pipeline-api/internal/repositories"
	"recruitops/pipeline-api/internal/services"
)

// DictionaryHandler is the administrative writer of the reference table.
// Every write invalidates the resolver cache for the touched category.
type DictionaryHandler struct {
	dictionaryRepo repositories.DictionaryRepository
	resolver       services.DictionaryResolver
	logger         *zap.Logger
}

func NewDictionaryHandler(
	dictionaryRepo repositories.DictionaryRepository,
	resolver services.DictionaryResolver,
	logger *zap.Logger,
) *DictionaryHandler {
	return &DictionaryHandler{
		dictionaryRepo: dictionaryRepo,
		resolver:       resolver,
		logger:         logger,
	}
}

// HandleList handles GET /dictionaries/:category
func (h *DictionaryHandler) HandleList(c *fiber.Ctx) error {
	category := c.Params("category")

	var entries []models.DictionaryEntry
	if err := withRetry(func() error {
		var err error
		entries, err = h.dictionaryRepo.ListByCategory(c.Context(), category)
		return err
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// HandleCreate handles POST /dictionaries
func (h *DictionaryHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.DictionaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}
	if req.Category == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "category and name are required",
		})
	}

	order := 0
	if req.DisplayOrder != nil {
		order = *req.DisplayOrder
	}
	entry := &models.DictionaryEntry{
		ID:           uuid.New(),
		Category:     req.Category,
		Name:         req.Name,
		DisplayOrder: order,
	}
	if err := withRetry(func() error {
		return h.dictionaryRepo.Create(c.Context(), entry)
	}); err != nil {
		return respondError(c, err)
	}

	h.resolver.Invalidate(req.Category)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleUpdate handles PUT /dictionaries/:id
func (h *DictionaryHandler) HandleUpdate(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid dictionary entry ID format",
		})
	}

	var req models.DictionaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	existing, err := h.dictionaryRepo.FindByID(c.Context(), entryID)
	if err != nil {
		return respondError(c, err)
	}

	// An omitted display_order stays put; resetting it to 0 would silently
	// change the category default.
	patch := map[string]interface{}{}
	if req.DisplayOrder != nil {
		patch["display_order"] = *req.DisplayOrder
	}
	if req.Name != "" {
		patch["name"] = req.Name
	}
	if err := withRetry(func() error {
		return h.dictionaryRepo.Update(c.Context(), entryID, patch)
	}); err != nil {
		return respondError(c, err)
	}

	h.resolver.Invalidate(existing.Category)

	updated, err := h.dictionaryRepo.FindByID(c.Context(), entryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDelete handles DELETE /dictionaries/:id
func (h *DictionaryHandler) HandleDelete(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid dictionary entry ID format",
		})
	}

	existing, err := h.dictionaryRepo.FindByID(c.Context(), entryID)
	if err != nil {
		return respondError(c, err)
	}

	if err := withRetry(func() error {
		return h.dictionaryRepo.Delete(c.Context(), entryID)
	}); err != nil {
		return respondError(c, err)
	}

	h.resolver.Invalidate(existing.Category)
	return c.SendStatus(fiber.StatusNoContent)
}
