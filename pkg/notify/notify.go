// Package notify is used internally by iconize to send/log operational
// events. It is made externally accessible mainly for source/writer
// plug-in development, since plug-in internals also should send
// important events to this channel. The common notify channel is passed
// to the plug-in in its entity.Config.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/teltech/logger"
	"github.com/vintern/iconize/entity"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Notifier sends notification events to an externally accessible channel
// and, if a logger is provided, to the log framework.
type Notifier struct {
	ch             entity.NotifyChan
	minNotifyLevel int
	log            *logger.Log
	sender         string
	instance       string
	spec           string
}

// New creates a new Notifier for one sender entity. The minimum level is
// taken from the OS env variable "LOG_LEVEL"; if absent or invalid it is
// set to "INFO" and can be re-set with SetNotifyLevel().
func New(ch entity.NotifyChan, log *logger.Log, sender, instance, spec string) *Notifier {

	minLevel := entity.NotifyLevel(os.Getenv("LOG_LEVEL"))
	if minLevel == entity.NotifyLevelInvalid {
		minLevel = entity.NotifyLevelInfo
	}

	return &Notifier{
		ch:             ch,
		minNotifyLevel: minLevel,
		log:            log,
		sender:         sender,
		instance:       instance,
		spec:           spec,
	}
}

func (n *Notifier) SetNotifyLevel(level int) {
	n.minNotifyLevel = level
}

// Notify formats and sends one event. Additional data is attached
// depending on level:
//
//	DEBUG and INFO: name of the calling func
//	WARN: as INFO plus file and line number
//	ERROR: as WARN plus the full stack trace.
func (n *Notifier) Notify(level int, message string, args ...any) {

	if level < n.minNotifyLevel {
		return
	}

	msg := fmt.Sprintf(message, args...)
	n.send(level, msg)

	if n.log == nil {
		return
	}

	logMsg := fmt.Sprintf("[%s:%s](spec: %s) %s", n.sender, n.instance, n.spec, msg)
	switch level {
	case entity.NotifyLevelDebug:
		n.log.Debug(logMsg)
	case entity.NotifyLevelInfo:
		n.log.Info(logMsg)
	case entity.NotifyLevelWarn:
		n.log.Warn(logMsg)
	case entity.NotifyLevelError:
		n.log.Error(logMsg)
	}
}

// send enriches the event with caller info and puts it on the channel.
// A full channel drops the event rather than blocking the pipeline.
func (n *Notifier) send(level int, msg string) {

	event := entity.NotificationEvent{
		Level:     entity.NotifyLevelName(level),
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Sender:    n.sender,
		Instance:  n.instance,
		Spec:      n.spec,
		Message:   msg,
	}

	// Caller two levels up: the func that called Notify().
	pc, file, line, _ := runtime.Caller(2)
	event.Func = "unknown"
	if f := runtime.FuncForPC(pc); f != nil {
		_, event.Func = filepath.Split(f.Name())
	}

	if level >= entity.NotifyLevelWarn {
		event.File = file
		event.Line = line
	}
	if level == entity.NotifyLevelError {
		stackTrace := make([]byte, 1024)
		stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]
		event.StackTrace = string(stackTrace)
	}

	select {
	case n.ch <- event:
	default:
	}
}
