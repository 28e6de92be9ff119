// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// fichas is the operator terminal for the repair shop service. It
// signs the operator in against the service's admin endpoint, saves
// the session locally, and runs the full-screen interface: dashboard,
// ficha and client registries, and the activity log.
//
// The tracking lookup for customers lives in the separate
// fichas-rastreio binary, which needs no login.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/assistec/fichas/cmd/fichas/cli"
	"github.com/assistec/fichas/lib/api"
	"github.com/assistec/fichas/lib/config"
	"github.com/assistec/fichas/lib/fichaui"
	"github.com/assistec/fichas/lib/schema"
	"github.com/assistec/fichas/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var serverURL string
	var logFile string
	var debug bool

	flagSet := pflag.NewFlagSet("fichas", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to fichas.yaml (default: $FICHAS_CONFIG)")
	flagSet.StringVar(&serverURL, "server", "", "service URL (overrides the config file)")
	flagSet.StringVar(&logFile, "log-file", "", "write diagnostic logs to this file")
	flagSet.BoolVar(&debug, "debug", false, "log at debug level")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fichas")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation(fmt.Errorf("unexpected argument: %s", args[0]))
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if cfg.Server.URL == "" {
		return cli.Validation(errors.New("no server URL configured; set server.url in fichas.yaml or pass --server"))
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	logger, closeLog, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("fichas iniciando", "versao", version.Short(), "commit", version.Commit())

	sessionPath := cfg.Session.File
	if sessionPath == "" {
		sessionPath, err = cli.SessionFilePath()
		if err != nil {
			return err
		}
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.Server.URL,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	client.SetOnUnauthorized(func() {
		logger.Warn("serviço rejeitou o token; sessão será encerrada")
	})

	operator, err := resumeSession(client, cfg.Server.URL, sessionPath)
	if err != nil {
		return err
	}

	for {
		if operator == nil {
			signedIn, err := promptLogin(client, cfg.Server.URL, sessionPath)
			if err != nil {
				return err
			}
			operator = signedIn
		}

		model := fichaui.NewModel(fichaui.Options{
			Client:       client,
			Operator:     *operator,
			SplitPercent: cfg.UI.SplitPercent,
		})
		options := []tea.ProgramOption{tea.WithAltScreen()}
		if cfg.UI.Mouse == nil || *cfg.UI.Mouse {
			options = append(options, tea.WithMouseAllMotion())
		}
		final, err := tea.NewProgram(model, options...).Run()
		if err != nil {
			return err
		}

		finalModel, ok := final.(fichaui.Model)
		if !ok {
			return cli.Internal(fmt.Errorf("unexpected final model %T", final))
		}
		if finalModel.SessionExpired() {
			if err := cli.ClearSession(sessionPath); err != nil {
				fmt.Fprintf(os.Stderr, "aviso: %v\n", err)
			}
			client.ClearToken()
			operator = nil
			fmt.Fprintln(os.Stderr, "Sessão expirada. Entre novamente.")
			continue
		}
		return nil
	}
}

// loadConfig resolves the configuration: an explicit --config path
// wins, then $FICHAS_CONFIG, then the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("FICHAS_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// buildLogger opens the diagnostic log. The TUI owns the terminal, so
// without a configured file all logging is discarded.
func buildLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { file.Close() }, nil
}

// resumeSession restores a saved login when one exists for this
// server. A bad or expired token is not an error here; the first
// request from the TUI surfaces it and the operator logs in again.
func resumeSession(client *api.Client, serverURL, sessionPath string) (*schema.Usuario, error) {
	session, err := cli.LoadSessionFrom(sessionPath)
	if errors.Is(err, cli.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if session.ServerURL != serverURL {
		return nil, nil
	}
	client.SetToken(session.Token)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	operator, err := client.CurrentUser(ctx)
	if err != nil {
		client.ClearToken()
		return nil, nil
	}
	return &operator, nil
}

// promptLogin reads credentials from the terminal, authenticates, and
// persists the session.
func promptLogin(client *api.Client, serverURL, sessionPath string) (*schema.Usuario, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, cli.Validation(errors.New("no terminal available for the login prompt"))
	}

	fmt.Fprint(os.Stderr, "Usuário: ")
	reader := bufio.NewReader(os.Stdin)
	usuario, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading usuário: %w", err)
	}
	usuario = strings.TrimSpace(usuario)
	if usuario == "" {
		return nil, cli.Validation(errors.New("usuário must not be empty"))
	}

	fmt.Fprint(os.Stderr, "Senha: ")
	senhaBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading senha: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	token, err := client.Login(ctx, usuario, string(senhaBytes))
	if err != nil {
		return nil, cli.Categorize(err)
	}
	operator, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, cli.Categorize(err)
	}

	if err := cli.SaveSessionTo(&cli.OperatorSession{
		Usuario:   usuario,
		Token:     token,
		ServerURL: serverURL,
	}, sessionPath); err != nil {
		// A failed save costs a re-login next run, nothing more.
		fmt.Fprintf(os.Stderr, "aviso: %v\n", err)
	}
	return &operator, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Fichas — terminal do operador para a oficina.

Entra no serviço com seu usuário administrador e abre a interface em
tela cheia: painel, fichas, clientes e registro de atividade. A sessão
fica salva; nas próximas execuções o login é automático até o token
expirar.

A consulta pública de andamento (sem login) é o binário
fichas-rastreio.

Usage:
  fichas [flags]

Flags:
%s`, flagSet.FlagUsages())
}
