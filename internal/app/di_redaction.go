package app

import (
	redactionHTTP "github.com/allisson/securetransfer/internal/redaction/http"
	redactionService "github.com/allisson/securetransfer/internal/redaction/service"
)

// RedactionEngine returns the PII redaction engine.
func (c *Container) RedactionEngine() *redactionService.Engine {
	c.redactionEngineInit.Do(func() {
		c.redactionEngine = redactionService.NewEngine()
	})
	return c.redactionEngine
}

// RedactionHandler returns the redaction HTTP handler.
func (c *Container) RedactionHandler() *redactionHTTP.RedactionHandler {
	c.redactionHandlerInit.Do(func() {
		c.redactionHandler = redactionHTTP.NewRedactionHandler(c.RedactionEngine(), c.Logger())
	})
	return c.redactionHandler
}
