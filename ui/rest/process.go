package rest

import (
	"github.com/gofiber/fiber/v2"
	domainLecture "github.com/shiurnotes/shiurnotes/domains/lecture"
	pkgError "github.com/shiurnotes/shiurnotes/pkg/error"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
)

const msgInvalidJSON = "Invalid JSON data"

type Process struct {
	Service domainLecture.IProcessUsecase
}

func InitRestProcess(app fiber.Router, service domainLecture.IProcessUsecase) Process {
	rest := Process{Service: service}
	app.Post("/process", rest.Process)
	app.Get("/api/lectures/normalize", rest.Normalize)

	return rest
}

func (handler *Process) Process(c *fiber.Ctx) error {
	decode := c.App().Config().JSONDecoder

	// An empty object carries nothing to process and is rejected like a bad body.
	var raw map[string]any
	if err := decode(c.Body(), &raw); err != nil || len(raw) == 0 {
		panic(pkgError.ValidationError(msgInvalidJSON))
	}

	var request domainLecture.ProcessRequest
	if err := decode(c.Body(), &request); err != nil {
		panic(pkgError.ValidationError(msgInvalidJSON))
	}

	response, err := handler.Service.Process(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(response)
}

func (handler *Process) Normalize(c *fiber.Ctx) error {
	response, err := handler.Service.Normalize(c.UserContext(), c.Query("url"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Lecture URL normalized",
		Results: response,
	})
}
