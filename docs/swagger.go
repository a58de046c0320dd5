// Package docs provides the Swagger documentation for the API.
package docs

// @title           AI Extractor
// @version         1.0
// @description     Relays free text to an OpenRouter-compatible model and returns the reply as structured JSON. Includes a small registry of active upstream models.

// @contact.name   API Support
// @contact.url    https://github.com/majidyz63/ai-extractor

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
