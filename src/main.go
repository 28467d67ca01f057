package main

import (
	"fmt"
	"os"
	"path/filepath"

	"mirvsim/src/misc"
	"mirvsim/src/simulator"
)

func main() {
	command_line_parser := InitCommandLineParser()
	command_line_parser.Parse(os.Args)

	if command_line_parser.IsArgSet("help") {
		fmt.Printf("%s", command_line_parser.StringifyHelpMsgs())
	} else {
		misc.ConfigureRuntime(command_line_parser)

		command_line_validator := new(misc.CommandLineValidator)
		command_line_validator.Init(command_line_parser)
		command_line_validator.Validate()

		config_loader := new(misc.ConfigLoader)
		config_loader.Init()

		config_validator := new(misc.ConfigValidator)
		config_validator.Init(config_loader)
		config_validator.Validate()

		out_dirpath := command_line_parser.StringParameter("out_dirpath")
		if out_dirpath != "" {
			args_file_dumper := new(misc.FileDumper)
			args_file_dumper.Init(filepath.Join(out_dirpath, "args.txt"))
			args_file_dumper.WriteLines([]string{command_line_parser.StringifyArgs()})

			options_file_dumper := new(misc.FileDumper)
			options_file_dumper.Init(filepath.Join(out_dirpath, "options.txt"))
			options_file_dumper.WriteLines([]string{command_line_parser.StringifyOptions()})
		}

		simulator_ := new(simulator.Simulator)
		simulator_.Init(command_line_parser)

		for !simulator_.IsFinished() {
			simulator_.Cycle()
		}

		simulator_.Dump()
		simulator_.Fini()
	}
}

func InitCommandLineParser() *misc.CommandLineParser {
	command_line_parser := new(misc.CommandLineParser)
	command_line_parser.Init()

	// Explanation of verbose level
	// level 0: Only prints simulation output
	// level 1: level 0 + prints the instruction retired per each logic cycle
	// level 2: level 1 + prints destination register writes per each logic cycle
	command_line_parser.AddOption(misc.INT, "verbose", "0", "verbosity of the simulation")

	command_line_parser.AddOption(misc.INT, "memory_words", "65536",
		"size of the unified memory in 32-bit words")

	command_line_parser.AddOption(misc.INT, "max_cycles", "1000000",
		"cycle watchdog, the run aborts after this many cycles")

	command_line_parser.AddOption(misc.INT, "start_pc", "0",
		"initial program counter, must be word aligned")

	command_line_parser.AddOption(misc.STRING, "image_filepath", "",
		"path to a memory image file to preload")

	command_line_parser.AddOption(misc.STRING, "out_dirpath", "",
		"path to the output directory for logs and dumps")

	return command_line_parser
}
