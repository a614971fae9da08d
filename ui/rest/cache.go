package rest

import (
	"github.com/gofiber/fiber/v2"
	domainCache "github.com/shiurnotes/shiurnotes/domains/cache"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
)

type Cache struct {
	Service domainCache.IGateway
}

func InitRestCache(app fiber.Router, service domainCache.IGateway) Cache {
	rest := Cache{Service: service}
	app.Get("/api/cache/stats", rest.GetStats)

	return rest
}

func (handler *Cache) GetStats(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Cache stats retrieved",
		Results: handler.Service.Stats(c.UserContext()),
	})
}
