package main

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/mdview/internal/cli"
)

func main() {
	// Keep UTF-8 output working on terminals with an unknown locale.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	log.SetFlags(0)
	log.SetPrefix("mdview: ")
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
