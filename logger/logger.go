package logger

import (
	"log"

	"github.com/fatih/color"
)

// Logger wraps the standard logger with colored levels
// and a verbose gate toggled at startup.
type Logger struct {
	verbose bool
}

func New(verbose bool) *Logger {
	return &Logger{verbose: verbose}
}

// Creates a standard log (use it for nonharmful and useful informations)
func (l *Logger) Log(format string, a ...interface{}) {
	log.Printf(format, a...)
}

// Logs if verbose flag is true
func (l *Logger) LogV(format string, a ...interface{}) {
	if l.verbose {
		l.Log(format, a...)
	}
}

// Sends a warn (use it for pottential problem)
func (l *Logger) Warn(format string, a ...interface{}) {
	color.Set(color.FgYellow)
	log.Printf("[WARN]: "+format, a...)
	color.Unset()
}

// Sends a warn (use it to inform about a real problem with a system but with no need to stop the service)
func (l *Logger) Err(format string, a ...interface{}) {
	color.Set(color.FgHiRed)
	log.Printf("[ERR]: "+format, a...)
	color.Unset()
}

// Scoped variant of Warn, prefixes the message with its source
func (l *Logger) SWarn(scope, format string, a ...interface{}) {
	l.Warn("["+scope+"] "+format, a...)
}

// Scoped variant of Err, prefixes the message with its source
func (l *Logger) SErr(scope, format string, a ...interface{}) {
	l.Err("["+scope+"] "+format, a...)
}

// We are fucked
func (l *Logger) Fatal(format string, a ...interface{}) {
	color.Set(color.FgRed)
	log.Fatalf("[FATAL]: "+format, a...)
	color.Unset()
}
