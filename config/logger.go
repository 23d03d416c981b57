package config

import (
	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level      int
	Format     string
	Output     string
	OutputFile string
}

func defaultLogger() *Logger {
	return &Logger{
		Level:  4, // logrus.InfoLevel
		Format: "json",
		Output: "stdout",
	}
}

func getLoggerConfig(v *viper.Viper) *Logger {
	l := defaultLogger()
	if v.IsSet("logger.level") {
		l.Level = v.GetInt("logger.level")
	}
	if v.IsSet("logger.format") {
		l.Format = v.GetString("logger.format")
	}
	if v.IsSet("logger.output") {
		l.Output = v.GetString("logger.output")
	}
	l.OutputFile = v.GetString("logger.output_file")
	return l
}
