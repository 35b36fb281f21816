package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// ItemsHandler manages owner-scoped inventory endpoints.
type ItemsHandler struct {
	service *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService) *ItemsHandler {
	return &ItemsHandler{service: itemService}
}

// CreateItem POST /items.
func (h *ItemsHandler) CreateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	item, err := h.service.CreateItem(c.Context(), principal.UserID, service.ItemCreateInput{
		Name:   req.Name,
		Model:  req.Model,
		Serial: req.Serial,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": itemResponse(item)})
}

// ListItems GET /items.
func (h *ItemsHandler) ListItems(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)

	items, err := h.service.ListItems(c.Context(), principal.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}

	resp := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, itemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetItem GET /items/:id.
func (h *ItemsHandler) GetItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	item, err := h.service.GetItem(c.Context(), principal.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": itemResponse(item)})
}

// UpdateItem PATCH /items/:id.
func (h *ItemsHandler) UpdateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	item, err := h.service.UpdateItem(c.Context(), principal.UserID, c.Params("id"), service.ItemUpdateInput{
		Name:   req.Name,
		Model:  req.Model,
		Serial: req.Serial,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": itemResponse(item)})
}

// DeleteItem DELETE /items/:id.
func (h *ItemsHandler) DeleteItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.DeleteItem(c.Context(), principal.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "item deleted"}})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func itemResponse(item *domain.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		Name:      item.Name,
		Model:     item.Model,
		Serial:    item.Serial,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
