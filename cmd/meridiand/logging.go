// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(flagMain.LogLevel)
	checkf(err, "parse log level")

	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
