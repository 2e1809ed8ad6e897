package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"golang.org/x/sync/errgroup"

	"colorlife/src/config"
	"colorlife/src/universe"
	"colorlife/src/view"
)

type EnvOptions struct {
	configPath  string
	interactive bool
}

func main() {
	eo, cfg := initOptions()

	logFile := setupLog(cfg.Log, eo.interactive)
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stateCh chan universe.Status
	headless := !eo.interactive && cfg.Web.Addr == ""
	if headless {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	options := cfg.Options()
	u := universe.NewSimulation(&options, stateCh)

	if err := settle(u, cfg); err != nil {
		log.Fatalf("settle: %v", err)
	}

	switch {
	case eo.interactive:
		runInteractive(ctx, u, cfg)
	case !headless:
		runWeb(ctx, u, cfg)
	default:
		runHeadless(ctx, u, stateCh)
	}
}

func initOptions() (eo *EnvOptions, cfg *config.Config) {
	eo = &EnvOptions{configPath: config.DefaultPath}

	var (
		interval       time.Duration
		maxGenerations = -1
		random         bool
		evaluation     string
		template       string
		webAddr        string
	)

	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "c", "config", "Path to the YAML config file")
	flaggy.Duration(&interval, "i", "interval", "Interval between the generations, for example 500ms")
	flaggy.Int(&maxGenerations, "s", "maxGenerations", "Pause after this many generations, 0 means never")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start the interactive terminal board")
	flaggy.Bool(&random, "r", "random", "Settle with random data")
	flaggy.String(&evaluation, "e", "evaluation", "Evaluation order ["+strings.Join(universe.Evaluations(), "|")+"]")
	flaggy.String(&template, "t", "template", "Seed template to settle the board with")
	flaggy.String(&webAddr, "w", "web", "Serve the web board on this address, for example 127.0.0.1:8080")

	flaggy.Parse()

	var err error
	if eo.configPath == config.DefaultPath {
		cfg, err = config.LoadOptional(eo.configPath)
	} else {
		cfg, err = config.Load(eo.configPath)
	}
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	s := &cfg.Simulation
	if interval != 0 {
		s.Interval = interval
	}
	if maxGenerations >= 0 {
		s.MaxGenerations = maxGenerations
	}
	if evaluation != "" {
		s.Evaluation = evaluation
	}
	if template != "" {
		s.Template = template
	}
	if random {
		s.Random = true
	}
	if webAddr != "" {
		cfg.Web.Addr = webAddr
	}

	if err = cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	return
}

//setupLog sends the log to the configured file, the terminal board owns the screen
func setupLog(lc config.LogConfig, interactive bool) *os.File {
	if lc.File == "" {
		if interactive {
			log.SetOutput(io.Discard)
		}
		return nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	log.SetOutput(f)
	return f
}

//settle adds the configured templates and seeds the board
func settle(u universe.Universe, cfg *config.Config) error {
	for _, tc := range cfg.Templates {
		tmpl, err := tc.Template()
		if err != nil {
			return err
		}
		if err = u.AddTemplate(tmpl); err != nil {
			return err
		}
	}

	if cfg.Simulation.Random {
		u.SettleWithRandomData(cfg.Simulation.Density)
	}
	if cfg.Simulation.Template != "" {
		return u.SettleTemplate(cfg.Simulation.Template)
	}
	return nil
}

func runInteractive(ctx context.Context, u universe.Universe, cfg *config.Config) {
	v := view.NewViewTerminal(cfg.Simulation.Density)
	u.RegisterViewer(v)

	group, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	if cfg.Web.Addr != "" {
		w := view.NewWebView(cfg.Web.Addr)
		u.RegisterViewer(w)
		group.Go(func() error {
			return w.Serve(ctx)
		})
	}
	group.Go(func() error {
		defer cancel()
		v.Start()
		return nil
	})
	if err := group.Wait(); err != nil {
		log.Printf("%v", err)
	}
	u.Close()
}

func runWeb(ctx context.Context, u universe.Universe, cfg *config.Config) {
	w := view.NewWebView(cfg.Web.Addr)
	u.RegisterViewer(w)
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	w.Start()
	log.Println("shutting down")
	u.Close()
}

func runHeadless(ctx context.Context, u universe.Universe, stateCh chan universe.Status) {
	c := view.NewConsoleOut()
	u.RegisterViewer(c)
	c.Start()

	if u.Options().MaxGenerations == 0 {
		fmt.Println("No generation limit, press Ctrl+C to stop")
	}

	u.Start()
	for done := false; !done; {
		select {
		case st := <-stateCh:
			done = st.RunningMode == universe.ModePaused
		case <-ctx.Done():
			fmt.Printf("\nInterrupted at generation %v\n", u.Status().Generation)
			done = true
		}
	}

	//keep the command loop unblocked while closing
	go func() {
		for range stateCh {
		}
	}()
	u.Close()
	close(stateCh)
}
