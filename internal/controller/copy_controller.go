// FILE: internal/controller/copy_controller.go
package controller

import (
	"errors"

	"ai-copychat-be/internal/constant"
	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/pkg/serverutils"
	"ai-copychat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICopyController interface {
	RegisterRoutes(r fiber.Router)
	GenerateCopy(ctx *fiber.Ctx) error
	GenerateMainIdea(ctx *fiber.Ctx) error
}

type copyController struct {
	copyService service.ICopyService
}

func NewCopyController(copyService service.ICopyService) ICopyController {
	return &copyController{copyService: copyService}
}

func (c *copyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/copy")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.GenerateCopy)
	h.Post("/main-idea", c.GenerateMainIdea)
}

func (c *copyController) GenerateCopy(ctx *fiber.Ctx) error {
	var form dto.CopyForm
	if err := ctx.BodyParser(&form); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&form); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.copyService.GenerateCopy(ctx.Context(), externalId(ctx), &form)
	if err != nil {
		if errors.Is(err, service.ErrCopyDailyCapReached) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.ErrorResponse(429, constant.MsgCopyDailyCapReached))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, constant.MsgCopyGenerateError))
	}
	return ctx.JSON(serverutils.SuccessResponse("Copy generated", res))
}

func (c *copyController) GenerateMainIdea(ctx *fiber.Ctx) error {
	var form dto.CopyForm
	if err := ctx.BodyParser(&form); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}

	res, err := c.copyService.GenerateMainIdea(ctx.Context(), externalId(ctx), &form)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, constant.MsgCopyGenerateError))
	}
	return ctx.JSON(serverutils.SuccessResponse("Main idea generated", res))
}
