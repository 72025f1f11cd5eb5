package logsvc

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/trezcool/labhub/core"
)

// level order: DEBUG < INFO < WARN < ERROR < FATAL
var levels = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3, "FATAL": 4}

// ConsoleLogger only writes to std; used in DEV and TEST.
type ConsoleLogger struct {
	std      *log.Logger
	minLevel int
	exit     func(v ...interface{}) // mockable
}

var _ core.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger returns a logger dropping the messages below minLevel (DEBUG, INFO, WARN, ERROR).
func NewConsoleLogger(std *log.Logger, minLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		std:      std,
		minLevel: levels[strings.ToUpper(minLevel)],
		exit:     std.Fatal,
	}
}

func (l *ConsoleLogger) log(level, msg string, args []interface{}) {
	if levels[level] < l.minLevel {
		return
	}
	printTo(l.std, level, msg, args)
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }

func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	l.exit(msg)
}

// printTo writes msg on one line followed by its args: extras as sorted key=value pairs,
// requests as "METHOD path" and errors with their stack trace.
func printTo(std *log.Logger, level, msg string, args []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)

	var errs []error
	for _, arg := range args {
		switch a := arg.(type) {
		case map[string]interface{}:
			keys := make([]string, 0, len(a))
			for k := range a {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b.WriteString(" " + k + "=")
				b.WriteString(strings.TrimSpace(fmt.Sprint(a[k])))
			}
		case *http.Request:
			if a != nil {
				b.WriteString(" request=\"" + a.Method + " " + a.URL.RequestURI() + "\"")
			}
		case error:
			errs = append(errs, a)
		default:
			b.WriteString(" " + fmt.Sprint(a))
		}
	}
	std.Println(b.String())
	for _, err := range errs {
		std.Printf("%+v\n", err)
	}
}
