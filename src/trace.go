/*------------------------------------------------------------------------------
* trace.go : debug trace functions
*
* notes  : trace levels follow rtklib (1:error, 2:warning, 3:info, 4-5:debug).
*          level 1 messages are always printed, other levels only when the
*          trace level is at least the message level.
*-----------------------------------------------------------------------------*/
package gnssir

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	mu_trace    sync.Mutex
	fp_trace    *os.File
	level_trace int
	tick_trace  time.Time /* time at traceopen */
	log_trace   = newTraceLogger(os.Stderr)
)

func newTraceLogger(w io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(log.TraceLevel)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	return l
}

/* trace level to logrus level -----------------------------------------------*/
func traceLevel2Log(level int) log.Level {
	switch {
	case level <= 1:
		return log.ErrorLevel
	case level == 2:
		return log.WarnLevel
	case level == 3:
		return log.InfoLevel
	case level == 4:
		return log.DebugLevel
	}
	return log.TraceLevel
}

/* open trace ------------------------------------------------------------------
* open trace file
* args   : string file      I   trace file path ("": stderr)
* return : status (nil: ok)
*-----------------------------------------------------------------------------*/
func TraceOpen(file string) error {
	mu_trace.Lock()
	defer mu_trace.Unlock()

	if len(file) == 0 {
		if fp_trace != nil {
			fp_trace.Close()
			fp_trace = nil
		}
		log_trace.SetOutput(os.Stderr)
		tick_trace = time.Now()
		return nil
	}
	fp, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "open trace file %s", file)
	}
	if fp_trace != nil {
		fp_trace.Close()
	}
	fp_trace = fp
	tick_trace = time.Now()
	log_trace.SetOutput(fp)
	return nil
}

func TraceClose() {
	mu_trace.Lock()
	defer mu_trace.Unlock()

	if fp_trace != nil {
		fp_trace.Close()
	}
	fp_trace = nil
	log_trace.SetOutput(os.Stderr)
}

func TraceLevel(level int) {
	mu_trace.Lock()
	level_trace = level
	mu_trace.Unlock()
}

/* set trace output writer (tests, embedding applications) -------------------*/
func TraceOutput(w io.Writer) {
	mu_trace.Lock()
	log_trace.SetOutput(w)
	mu_trace.Unlock()
}

func Trace(level int, format string, v ...interface{}) {
	mu_trace.Lock()
	lv := level_trace
	mu_trace.Unlock()

	if level > 1 && level > lv {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, v...), "\n")
	log_trace.WithField("lvl", level).Log(traceLevel2Log(level), msg)
}

/* trace with elapsed time since traceopen ------------------------------------*/
func Tracet(level int, format string, v ...interface{}) {
	mu_trace.Lock()
	lv, t0 := level_trace, tick_trace
	mu_trace.Unlock()

	if level > 1 && level > lv {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, v...), "\n")
	log_trace.WithFields(log.Fields{
		"lvl":     level,
		"elapsed": fmt.Sprintf("%.3f", time.Since(t0).Seconds()),
	}).Log(traceLevel2Log(level), msg)
}
