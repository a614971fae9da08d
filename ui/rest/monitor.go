package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shiurnotes/shiurnotes/pkg/runmonitor"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
)

type Monitor struct {
	Monitor *runmonitor.Monitor
}

func InitRestMonitor(app fiber.Router, monitor *runmonitor.Monitor) Monitor {
	rest := Monitor{Monitor: monitor}
	app.Get("/api/monitor/runs", rest.GetRuns)

	return rest
}

// GetRuns returns pipeline totals and the most recent runs.
func (handler *Monitor) GetRuns(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Pipeline runs retrieved",
		Results: handler.Monitor.GetStats(),
	})
}
