// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/meridianchain/meridian/protocol"
)

var cmdMain = &cobra.Command{
	Use:   "meridiand",
	Short: "Meridian authority verification tool",
	Run:   printUsageAndExit1,
}

var flagMain struct {
	Config   string
	LogLevel string
	Db       string
}

func init() {
	cmdMain.PersistentFlags().StringVarP(&flagMain.Config, "config", "c", "", "Configuration file")
	cmdMain.PersistentFlags().StringVar(&flagMain.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmdMain.PersistentFlags().StringVar(&flagMain.Db, "db", "", "Persist accounts in a Badger database at this path instead of in memory")
	cmdMain.PersistentFlags().Uint32("max-recursion", protocol.SigCheckDepthLimit, "Bound on the delegation search depth")
	cmdMain.PersistentFlags().Bool("allow-owner", false, "Allow owner authorities to satisfy requirements reached through delegation")
	cmdMain.PersistentFlags().Bool("allow-committee", false, "Allow the committee account among required active accounts")
	cmdMain.PersistentFlags().Bool("ignore-custom-auths", false, "Ignore the account requirements custom operations declare for themselves")
	cmdMain.PersistentFlags().String("metrics-listen", "", "Serve Prometheus metrics on this address while the command runs")

	for _, name := range []string{"max-recursion", "allow-owner", "allow-committee", "ignore-custom-auths", "metrics-listen"} {
		check(viper.BindPFlag(name, cmdMain.PersistentFlags().Lookup(name)))
	}

	cobra.OnInitialize(initConfig, startMetrics)
}

func initConfig() {
	viper.SetEnvPrefix("MERIDIAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if flagMain.Config != "" {
		viper.SetConfigFile(flagMain.Config)
	} else {
		viper.SetConfigName("meridiand")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.meridian")
		}
	}

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			checkf(err, "read configuration")
		}
	}
}

// startMetrics exposes the Prometheus registry for the lifetime of the
// command, if an address is configured.
func startMetrics() {
	addr := viper.GetString("metrics-listen")
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			fatalf("metrics server: %v", err)
		}
	}()
}

func main() {
	_ = cmdMain.Execute()
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}

func checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		fatalf(format+": %v", append(otherArgs, err)...)
	}
}
