package log

import "gopkg.in/Sirupsen/logrus.v0"

// Fields is a plain alias for building one-off log entries outside of hot
// loops, where the EntryZ builder's ceremony isn't worth it.
type Fields = logrus.Fields

func (m Module) Debug(msg string, fields Fields) { m.log(logrus.DebugLevel, msg, fields) }
func (m Module) Info(msg string, fields Fields)  { m.log(logrus.InfoLevel, msg, fields) }
func (m Module) Warn(msg string, fields Fields)  { m.log(logrus.WarnLevel, msg, fields) }
func (m Module) Error(msg string, fields Fields) { m.log(logrus.ErrorLevel, msg, fields) }

func (m Module) log(level logrus.Level, msg string, fields Fields) {
	if !m.isEnabled() {
		return
	}
	if fields == nil {
		fields = Fields{}
	}
	fields["mod"] = m.String()
	entry := backend.WithFields(fields)
	switch level {
	case logrus.DebugLevel:
		entry.Debug(msg)
	case logrus.InfoLevel:
		entry.Info(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	case logrus.ErrorLevel:
		entry.Error(msg)
	}
}
