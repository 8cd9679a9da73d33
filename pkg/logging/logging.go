package logging

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

/*
Setup applies the configured log level and reporting options to the
process-wide logger.  Called once at startup, after the config loads.
*/
func Setup() {
	level, err := log.ParseLevel(viper.GetString("logging.level"))

	if err != nil {
		level = log.InfoLevel
	}

	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if viper.GetBool("logging.caller") {
		log.SetReportCaller(true)
	}
}
