package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"git.lost.host/meutraa/ivory/internal/config"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	// The terminal belongs to the renderer, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	p := &Program{Config: cfg, Logger: log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)}
	p.Init()
	log.Printf("ivory %v %v\n", config.Version, cfg.Command)

	switch cfg.Command {
	case config.Play:
		return p.Play(ctx)
	case config.Scores:
		return p.Scores(ctx, os.Stdout)
	case config.Record:
		return p.Record(ctx, os.Stdout)
	case config.Playback:
		return p.Playback(ctx)
	case config.Replay:
		return p.Replay(ctx, os.Stdout)
	case config.Rename:
		return p.Rename(os.Stdout)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}
