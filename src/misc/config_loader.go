package misc

type ConfigLoader struct{}

type runtimeConfig struct {
	memoryWords   int
	maxCycles     int64
	startPc       int64
	imageFilepath string
	outDirpath    string
}

var globalConfig = runtimeConfig{
	memoryWords: 64 * 1024,
	maxCycles:   1_000_000,
	startPc:     0,
}

// ConfigureRuntime latches the parsed command line options into the
// runtime configuration shared by the rest of the simulator.
func ConfigureRuntime(parser *CommandLineParser) {
	if parser == nil {
		return
	}

	SetRuntimeVerbosity(int(parser.IntParameter("verbose")))

	globalConfig.memoryWords = int(parser.IntParameter("memory_words"))
	globalConfig.maxCycles = parser.IntParameter("max_cycles")
	globalConfig.startPc = parser.IntParameter("start_pc")
	globalConfig.imageFilepath = parser.StringParameter("image_filepath")
	globalConfig.outDirpath = parser.StringParameter("out_dirpath")
}

func (this *ConfigLoader) Init() {
}

func (this *ConfigLoader) AddressWidth() int {
	return 32
}

func (this *ConfigLoader) WordBytes() int {
	return 4
}

func (this *ConfigLoader) MemoryWords() int {
	return globalConfig.memoryWords
}

// MaxCycles bounds a run so a misprogrammed image cannot spin forever.
func (this *ConfigLoader) MaxCycles() int64 {
	return globalConfig.maxCycles
}

func (this *ConfigLoader) StartPc() uint32 {
	return uint32(globalConfig.startPc)
}

func (this *ConfigLoader) ImageFilepath() string {
	return globalConfig.imageFilepath
}

func (this *ConfigLoader) OutDirpath() string {
	return globalConfig.outDirpath
}
