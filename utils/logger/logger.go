// Package logger wraps logrus with a fixed "|object|message" line layout.
package logger

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

const objWidth = 20

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).Name()
	}
	return
}

// Init sets the global level and line format. Call once before logging.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

func emit(logFn func(...any), obj any, msg string) {
	objStr := objToString(obj)
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	logFn(fmt.Sprintf("|%20s|%s", objStr, msg))
}

func Trace(obj any, msg string) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		emit(logrus.Trace, obj, msg)
	}
}

func Tracef(obj any, msg string, args ...any) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		emit(logrus.Trace, obj, fmt.Sprintf(msg, args...))
	}
}

func Debug(obj any, msg string) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		emit(logrus.Debug, obj, msg)
	}
}

func Debugf(obj any, msg string, args ...any) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		emit(logrus.Debug, obj, fmt.Sprintf(msg, args...))
	}
}

func Info(obj any, msg string) {
	if logrus.IsLevelEnabled(logrus.InfoLevel) {
		emit(logrus.Info, obj, msg)
	}
}

func Infof(obj any, msg string, args ...any) {
	if logrus.IsLevelEnabled(logrus.InfoLevel) {
		emit(logrus.Info, obj, fmt.Sprintf(msg, args...))
	}
}

func Warning(obj any, msg string) {
	if logrus.IsLevelEnabled(logrus.WarnLevel) {
		emit(logrus.Warning, obj, msg)
	}
}

func Warningf(obj any, msg string, args ...any) {
	if logrus.IsLevelEnabled(logrus.WarnLevel) {
		emit(logrus.Warning, obj, fmt.Sprintf(msg, args...))
	}
}

func Error(obj any, msg string) {
	if logrus.IsLevelEnabled(logrus.ErrorLevel) {
		emit(logrus.Error, obj, msg)
	}
}

func Errorf(obj any, msg string, args ...any) {
	if logrus.IsLevelEnabled(logrus.ErrorLevel) {
		emit(logrus.Error, obj, fmt.Sprintf(msg, args...))
	}
}

func Fatal(obj any, msg string) {
	emit(logrus.Fatal, obj, msg)
}

func Fatalf(obj any, msg string, args ...any) {
	emit(logrus.Fatal, obj, fmt.Sprintf(msg, args...))
}
