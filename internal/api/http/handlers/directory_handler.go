package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ops-console/internal/api/dto"
	"github.com/spec-kit/ops-console/internal/service"
)

// DirectoryHandler serves the assignable user and group lists consumed by
// ticket views.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: directoryService}
}

// ListUsers GET /users.
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListGroups GET /groups.
func (h *DirectoryHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.service.ListGroups(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		items = append(items, dto.GroupResponse{ID: group.ID, Name: group.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}
