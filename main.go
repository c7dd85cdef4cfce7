package main

import (
	"log"

	"github.com/faiface/mainthread"
	"github.com/memmaker/sonnet/viewer"
)

func run() {
	settings, err := viewer.LoadSettings("settings.json")
	if err != nil {
		log.Fatal(err)
	}
	sonnetViewer, err := viewer.NewSonnetViewer(settings)
	if err != nil {
		log.Fatal(err)
	}
	sonnetViewer.Run()
}

func main() {
	mainthread.Run(run)
}
