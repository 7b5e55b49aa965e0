package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/cmaxwell/sweeper/internal/keygen"
	"github.com/cmaxwell/sweeper/internal/sweep"
)

var log = logrus.New()

func setupLogging(verbose bool, logFile string) error {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	sweep.Log.SetLevel(level)
	keygen.Log.SetLevel(level)

	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	sweep.Log.AddHook(hook)
	keygen.Log.AddHook(hook)
	return nil
}

// loadPuzzle reads a board/key pair, dropping the trailing newline
// text files carry so the contents compare cleanly against solver
// output.
func loadPuzzle(boardPath, keyPath string) (board, key string, err error) {
	boardBytes, err := os.ReadFile(boardPath)
	if err != nil {
		return "", "", fmt.Errorf("unable to read board file: %w", err)
	}
	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return "", "", fmt.Errorf("unable to read key file: %w", err)
	}
	board = strings.TrimSuffix(string(boardBytes), "\n")
	key = strings.TrimSuffix(string(keyBytes), "\n")
	return board, key, nil
}

func main() {
	var (
		rows      = flag.Int("rows", 16, "board height")
		cols      = flag.Int("cols", 30, "board width")
		mines     = flag.Int("mines", 99, "mine count")
		boardPath = flag.String("board", "", "path to a board file (requires -key)")
		keyPath   = flag.String("key", "", "path to a key file")
		logFile   = flag.String("log-file", "", "write debug logs to a rotating file")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := setupLogging(*verbose, *logFile); err != nil {
		log.WithError(err).Fatal("unable to set up logging")
	}

	var (
		board string
		key   string
		err   error
	)
	if *boardPath != "" || *keyPath != "" {
		if *boardPath == "" || *keyPath == "" {
			log.Fatal("-board and -key must be used together")
		}
		board, key, err = loadPuzzle(*boardPath, *keyPath)
		if err != nil {
			log.WithError(err).Fatal("unable to load puzzle")
		}
		if err := keygen.Validate(key); err != nil {
			log.WithError(err).Fatal("key failed validation")
		}
	} else {
		rnd := rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
		board, key, err = keygen.Generate(*rows, *cols, *mines, rnd)
		if err != nil {
			log.WithError(err).Fatal("unable to generate a puzzle")
		}
		log.WithFields(logrus.Fields{
			"rows": *rows, "cols": *cols, "mines": *mines,
		}).Info("puzzle generated")
	}

	oracle, err := keygen.NewKeyOracle(key)
	if err != nil {
		log.WithError(err).Fatal("unable to build an oracle from the key")
	}

	solution, err := sweep.Solve(board, oracle.MineCount(), oracle)
	if err != nil {
		log.WithError(err).Fatal("solver failed")
	}

	if solution == sweep.Unsolved {
		log.Warn("board cannot be finished without guessing")
		fmt.Println(sweep.Unsolved)
		os.Exit(2)
	}

	if solution != key {
		log.Fatal("solution does not match the key")
	}
	fmt.Println(solution)
}
