// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/dcpu16/dcpu"
)

func main() {
	var compile string
	var disassemble string
	var output string
	var verbose bool

	asm := &dcpu.Assembler{}

	flag.StringVar(&compile, "c", "", ".s file to assemble ('-' for stdin)")
	flag.StringVar(&disassemble, "d", "", "hex word dump to disassemble ('-' for stdin)")
	flag.StringVar(&output, "o", "-", "Output file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine NAME=VALUE for $(...) expressions", func(def string) error {
		name, value, ok := strings.Cut(def, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("expected NAME=VALUE, got %q", def)
		}
		v64, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return err
		}
		asm.Predefine(name, v64)
		return nil
	})

	flag.Parse()

	log.SetFlags(0)

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(compile) == 0) == (len(disassemble) == 0) {
		log.Fatalf("%v: exactly one of -c or -d is required", os.Args[0])
	}

	var ouf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		ouf = file
	}

	if len(compile) != 0 {
		inf, err := open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm.Verbose = verbose
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if verbose {
			for _, op := range prog.Opcodes {
				log.Printf("%04x: %v", op.Address, strings.Join(op.Words, " "))
			}
		}

		err = WriteWords(ouf, prog.Binary())
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	inf, err := open(disassemble)
	if err != nil {
		log.Fatalf("%v: %v", disassemble, err)
	}
	defer inf.Close()

	words, err := ReadWords(inf)
	if err != nil {
		log.Fatalf("%v: %v", disassemble, err)
	}

	for listing, err := range dcpu.Instructions(words) {
		if err != nil {
			log.Fatalf("%v: %v", disassemble, err)
		}
		if verbose {
			_, err = fmt.Fprintf(ouf, "%-24v ; %04x: %04x\n", listing, listing.Address, listing.Words)
		} else {
			_, err = fmt.Fprintln(ouf, listing)
		}
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}
}

// open opens a file, or stdin for "-".
func open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
