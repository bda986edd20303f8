// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/text/language"

	"github.com/ezrec/efac/internal/backend"
	"github.com/ezrec/efac/monitor"
	"github.com/ezrec/efac/translate"
)

func main() {
	var backendName string
	var lang string
	var verbose bool

	flag.StringVar(&backendName, "backend", backend.EMULATE, "Accumulator backend: soft, emulate or device")
	flag.StringVar(&lang, "lang", "", "Message language, defaults to the system locale")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		tag, err := language.Parse(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
		translate.Use(tag)
	}

	acc, err := backend.Open(backendName, verbose)
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer acc.Close()

	mon := &monitor.Monitor{
		Verbose: verbose,
		Acc:     acc.Acc,
		Window:  acc.Window,
		Output:  os.Stdout,
	}

	err = mon.Run(os.Stdin)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
