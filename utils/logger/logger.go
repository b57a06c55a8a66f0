package logger

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

type logPair struct {
	logFn func(...any)
	obj   string
	msg   string
}

const (
	logSize = 1000
	objSize = 20
)

var (
	logCh    = make(chan logPair, logSize)
	initOnce sync.Once
	async    atomic.Bool
)

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		t := reflect.TypeOf(obj)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		objStr = t.Name()
	}
	if len(objStr) > objSize {
		objStr = objStr[:objSize]
	}
	return
}

func format(p logPair) string {
	return fmt.Sprintf("|%20s|%-100s", p.obj, p.msg)
}

// Init sets the level and formatter and moves log writes to a background goroutine.
// Until Init is called, entries are written synchronously. Format "json" selects the
// logrus JSON formatter, anything else the text formatter.
func Init(lvl logrus.Level, logFormat string) {
	logrus.SetLevel(lvl)
	if logFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:     true,
			FullTimestamp:   true,
			PadLevelText:    true,
			TimestampFormat: "2006/02/01 15:04:05",
		})
	}

	initOnce.Do(func() {
		go func() {
			sb := new(bytes.Buffer)
			for p := range logCh {
				sb.WriteString(format(p))
				p.logFn(sb.String())
				sb.Reset()
			}
		}()
		async.Store(true)
	})
}

func emit(lvl logrus.Level, logFn func(...any), object any, msg func() string) {
	if logrus.GetLevel() < lvl {
		return
	}
	p := logPair{logFn: logFn, obj: objToString(object), msg: msg()}
	if async.Load() {
		logCh <- p
		return
	}
	logFn(format(p))
}

func Trace(object any, message string) {
	emit(logrus.TraceLevel, logrus.Trace, object, func() string { return message })
}

func Tracef(object any, message string, args ...any) {
	emit(logrus.TraceLevel, logrus.Trace, object, func() string { return fmt.Sprintf(message, args...) })
}

func Debug(object any, message string) {
	emit(logrus.DebugLevel, logrus.Debug, object, func() string { return message })
}

func Debugf(object any, message string, args ...any) {
	emit(logrus.DebugLevel, logrus.Debug, object, func() string { return fmt.Sprintf(message, args...) })
}

func Info(object any, message string) {
	emit(logrus.InfoLevel, logrus.Info, object, func() string { return message })
}

func Infof(object any, message string, args ...any) {
	emit(logrus.InfoLevel, logrus.Info, object, func() string { return fmt.Sprintf(message, args...) })
}

func Warning(object any, message string) {
	emit(logrus.WarnLevel, logrus.Warning, object, func() string { return message })
}

func Warningf(object any, message string, args ...any) {
	emit(logrus.WarnLevel, logrus.Warning, object, func() string { return fmt.Sprintf(message, args...) })
}

func Error(object any, message string) {
	emit(logrus.ErrorLevel, logrus.Error, object, func() string { return message })
}

func Errorf(object any, message string, args ...any) {
	emit(logrus.ErrorLevel, logrus.Error, object, func() string { return fmt.Sprintf(message, args...) })
}

func Fatal(object any, message string) {
	logrus.Fatal(format(logPair{obj: objToString(object), msg: message}))
}

func Fatalf(object any, message string, args ...any) {
	logrus.Fatal(format(logPair{obj: objToString(object), msg: fmt.Sprintf(message, args...)}))
}
