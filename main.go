package main

import (
	"log"

	"github.com/anoixa/photo-gallery/config"

	"github.com/anoixa/photo-gallery/cmd"
)

func main() {
	log.Printf("photo gallery %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
