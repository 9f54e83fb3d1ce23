package iwdscan

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the logger shared by all commands. Network lines go to
// stdout, so out is normally stderr.
func NewLogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
