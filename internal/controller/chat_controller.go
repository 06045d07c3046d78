package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-portgate-be/internal/dto"
	"ai-portgate-be/internal/pkg/serverutils"
	"ai-portgate-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware) // ✅ PROTECTED
	h.Post("/messages", c.SendMessage)
	h.Get("/conversations/:id/turns", c.GetHistory)
	h.Delete("/conversations/:id/turns", c.ClearHistory)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(
		ctx.Context(),
		localString(ctx, "user_id"),
		localString(ctx, "role"),
		localString(ctx, "auth_token"),
		req,
	)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	turns, err := c.service.GetHistory(ctx.Context(), ctx.Params("id"), localString(ctx, "auth_token"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get conversation history", turns))
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	if err := c.service.ClearHistory(ctx.Context(), ctx.Params("id"), localString(ctx, "auth_token")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear conversation history", nil))
}

// localString reads a middleware-set value without panicking when a claim
// was absent from the token.
func localString(ctx *fiber.Ctx, key string) string {
	if v, ok := ctx.Locals(key).(string); ok {
		return v
	}
	return ""
}
