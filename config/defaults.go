package config

const (
	defaultLevel  = "info"
	defaultTarget = "stdout"
	defaultColor  = "auto"
)

// Default returns the configuration used when a file sets nothing.
func Default() Config {
	return Config{
		Level: defaultLevel,
	}
}

func defaultOutput() Output {
	return Output{
		Type:   OutputConsole,
		Format: FormatText,
		Target: defaultTarget,
		Color:  defaultColor,
	}
}

func defaultFormat(outputType string) string {
	switch outputType {
	case OutputFile, OutputZap, OutputZerolog:
		return FormatJSON
	default:
		return FormatText
	}
}
