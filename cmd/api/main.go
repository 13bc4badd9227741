package main

import (
	_ "github.com/apolaki-ghub/Project3/docs"
)

// @title           Audio Sentiment Recorder API
// @version         1.0.0
// @description     Records or uploads WAV audio, transcribes it with cloud speech services and stores a sentiment report next to each recording.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token from /api/token
func main() {
	Execute()
}
