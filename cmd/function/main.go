package main

import (
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/rs/zerolog/log"

	// Registers TranscribeVideo.
	_ "github.com/nguyentantai21042004/video-insight"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := funcframework.Start(port); err != nil {
		log.Fatal().Err(err).Str("port", port).Msg("function framework stopped")
	}
}
