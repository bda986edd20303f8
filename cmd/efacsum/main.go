// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"golang.org/x/text/language"

	"github.com/ezrec/efac/accum"
	"github.com/ezrec/efac/emulator"
	"github.com/ezrec/efac/internal/backend"
	"github.com/ezrec/efac/translate"
)

func main() {
	var terms int
	var backendName string
	var lang string
	var verbose bool

	flag.IntVar(&terms, "n", 99999999, "Terms of the harmonic series")
	flag.StringVar(&backendName, "backend", backend.SOFT, "Accumulator backend: soft, emulate or device")
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

	start := time.Now()
	sum64, sum32, err := harmonic(acc.Acc, 0, terms)
	if err != nil {
		log.Fatalf("sum: %v", err)
	}
	elapsed := time.Since(start)

	modes := []accum.RoundingMode{accum.ROUND_NEAREST, accum.ROUND_AWAY_FROM_ZERO, accum.ROUND_TOWARD_ZERO}
	results := make([]float32, len(modes))
	for n, mode := range modes {
		results[n], err = acc.Acc.ReadRounded(0, mode)
		if err != nil {
			log.Fatalf("read: %v", err)
		}
	}

	fmt.Printf("float64 %.18e\n", sum64)
	fmt.Printf("float32 %.18e\n", sum32)
	for n, mode := range modes {
		fmt.Printf("%-7v %.18e\n", mode, results[n])
	}
	for n, mode := range modes {
		fmt.Printf("%-7v 0x%08x\n", mode, math.Float32bits(results[n]))
	}

	if verbose {
		log.Printf("%v terms in %v", terms, elapsed)
		cop, ok := acc.Window.(*emulator.Coprocessor)
		if ok {
			log.Printf("%v stores, %v publishes", cop.Stores, cop.Publishes)
		}
	}
}

// term returns the i'th term of the harmonic series, divided in float64.
func term(i int) float32 {
	return float32(1 / float64(i))
}

// harmonic clears reg and folds the terms 1..terms into it. The naive float64
// and float32 sums of the same terms are returned.
func harmonic(acc accum.Accumulator, reg int, terms int) (sum64 float64, sum32 float32, err error) {
	err = acc.Clear(reg)
	if err != nil {
		return
	}

	for i := 1; i <= terms; i++ {
		value := term(i)
		sum64 += float64(value)
		sum32 += value
		err = acc.Add(reg, value)
		if err != nil {
			return
		}
	}

	return
}
