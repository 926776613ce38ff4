// Command zurigen is a UCI chess engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/chess-engines/zurigen/internal/config"
	"github.com/chess-engines/zurigen/internal/logx"
	"github.com/chess-engines/zurigen/internal/uci"
)

var (
	buildVersion = "(devel)"
	buildTime    = "(just now)"

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "only print version and exit")
	configPath = flag.String("config", "", "path to a TOML configuration file")
)

func main() {
	fmt.Printf("zurigen %v, built with %v at %v, running on %v\n",
		buildVersion, runtime.Version(), buildTime, runtime.GOARCH)

	flag.Parse()
	if *version {
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cpuprofile:", err)
			os.Exit(1)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logx.New("zurigen", os.Stderr, cfg.Logging.Level)
	log.Infof("starting with hash=%dMB multipv=%d evaluator=%s",
		cfg.Engine.HashSizeMB, cfg.Engine.MultiPV, cfg.Engine.Evaluator)

	session := uci.New(os.Stdout, cfg.Engine.HashSizeMB)
	if err := uci.Run(os.Stdin, session); err != nil {
		log.Errorf("read loop: %v", err)
		os.Exit(1)
	}
}
