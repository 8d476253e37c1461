package cmd

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	ogio "github.com/annchain/ogledger/common/io"
	"github.com/annchain/ogledger/common/goroutine"
	"github.com/annchain/ogledger/common/utilfuncs"
	"github.com/annchain/ogledger/mylog"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func logDir() string {
	return ogio.FixPrefixPath(viper.GetString("dir.root"), viper.GetString("dir.log"))
}

// initLogger uses viper to get the log path and level. It should be called by all other commands
func initLogger() {
	doStdout := viper.GetBool("log.stdout")
	doFile := viper.GetBool("log.file")
	logdir := logDir()

	var writers []io.Writer

	if doFile {
		folderPath, err := filepath.Abs(logdir)
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log path: %s", logdir))

		abspath, err := filepath.Abs(path.Join(logdir, "run"))
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log file path: %s", logdir))

		err = os.MkdirAll(folderPath, os.ModePerm)
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on creating log dir: %s", folderPath))
		writers = append(writers, mylog.RotateLog(abspath))
		fmt.Println("Will be logged to " + abspath + ".log")
		goroutine.SetDumpDir(folderPath)
	}
	if doStdout {
		writers = append(writers, os.Stdout)
	}
	switch len(writers) {
	case 0:
		logrus.SetOutput(io.Discard)
	case 1:
		logrus.SetOutput(writers[0])
	default:
		logrus.SetOutput(io.MultiWriter(writers...))
	}

	switch viper.GetString("log.level") {
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	default:
		fmt.Println("Unknown level: ", viper.GetString("log.level"), "Set to INFO")
		logrus.SetLevel(logrus.InfoLevel)
	}

	Formatter := new(logrus.TextFormatter)
	Formatter.ForceColors = doStdout && !doFile
	Formatter.TimestampFormat = "2006-01-02 15:04:05.000000"
	Formatter.FullTimestamp = true
	logrus.StandardLogger().SetFormatter(Formatter)

	if viper.GetBool("log.line_number") {
		logrus.SetReportCaller(true)
	}
	if viper.GetBool("multifile_by_level") && doFile {
		writerMap := lfshook.WriterMap{}
		for _, level := range logrus.AllLevels {
			p, _ := filepath.Abs(path.Join(logdir, level.String()))
			writerMap[level] = mylog.RotateLog(p)
		}
		logrus.AddHook(lfshook.NewHook(writerMap, Formatter))
	}
	logrus.Debug("Logger initialized.")
}

// audit logs go to files only when file logging is on
func initAuditLogger() {
	if viper.GetBool("log.file") {
		mylog.InitLoggers(logDir())
	} else {
		mylog.InitLoggers("")
	}
}
