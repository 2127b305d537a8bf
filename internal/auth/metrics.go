// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

var mVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "meridian",
	Subsystem: "auth",
	Name:      "verifications_total",
	Help:      "Number of authority verification passes, by result",
}, []string{"result"})

func recordVerification(err error) {
	if err == nil {
		mVerifications.WithLabelValues("ok").Inc()
		return
	}
	mVerifications.WithLabelValues(errors.Code(err).String()).Inc()
}
