// FILE: internal/controller/voice_controller.go
package controller

import (
	"errors"
	"io"

	"ai-copychat-be/internal/pkg/serverutils"
	"ai-copychat-be/internal/service"
	"ai-copychat-be/pkg/transcribe"

	"github.com/gofiber/fiber/v2"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	UploadVoice(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{voiceService: voiceService}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.UploadVoice)
}

// UploadVoice accepts a multipart upload with one or more "chunks" files in
// submission order.
func (c *voiceController) UploadVoice(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid multipart form"))
	}

	files := form.File["chunks"]
	if len(files) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "no audio chunks submitted"))
	}

	chunks := make([]transcribe.Chunk, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "failed to read audio chunk"))
		}
		audio, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "failed to read audio chunk"))
		}
		chunks = append(chunks, transcribe.Chunk{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
			Audio:       audio,
		})
	}

	reply, err := c.voiceService.HandleVoice(ctx.Context(), externalId(ctx), chunks)
	if err != nil {
		if errors.Is(err, service.ErrChunkTooLarge) {
			return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(serverutils.ErrorResponse(413, err.Error()))
		}
		if errors.Is(err, service.ErrUnsupportedAudio) {
			return ctx.Status(fiber.StatusUnsupportedMediaType).JSON(serverutils.ErrorResponse(415, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice handled", reply))
}
