// Copyright 2026, Mark Halls <mark.halls.8@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/mark-halls/ls8/cpu"
	"github.com/mark-halls/ls8/emulator"
)

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.BoolVar(&save, "s", false, "Save program image, do not execute")
	flag.StringVar(&output, "o", "-", "Image output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	var prog *cpu.Program

	switch {
	case len(compile) != 0 && flag.NArg() != 0:
		log.Fatalf("%v: both an image and -c source given", os.Args[0])
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for equ, value := range emu.Defines() {
			asm.Predefine(equ, value)
		}

		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() == 1:
		image := flag.Arg(0)
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		prog, err = cpu.ParseImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	default:
		log.Fatalf("%v: expected an image file or -c source", os.Args[0])
	}

	if save {
		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err := prog.WriteImage(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu.Program = prog

	if output == "-" {
		emu.Console.Writer = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Console.Writer = ouf
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
