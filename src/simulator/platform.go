package simulator

import "mirvsim/src/misc"

type Platform interface {
	Init(command_line_parser *misc.CommandLineParser)
	Fini()
	IsFinished() bool
	Cycle()
	Dump()
}

func newPlatform() Platform {
	return new(CorePlatform)
}
