// Logger setup shared by all packages
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package logutil

import (
	"sync"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger *logrus.Logger
)

func root() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		formatter.SpacePadding = 40
		logger.SetFormatter(formatter)
	}
	return logger
}

// SetLevel adjusts the verbosity of all component loggers.
func SetLevel(level logrus.Level) {
	root().SetLevel(level)
}

// GetLogger returns a component logger with the given prefix.
func GetLogger(prefix string) *logrus.Entry {
	return root().WithField("prefix", prefix)
}
