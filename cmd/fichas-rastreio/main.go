// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// fichas-rastreio looks up the public status of a repair by its
// tracking code. It talks to the same service as the operator
// terminal but needs no login: the endpoint only exposes what the
// customer may see.
//
// Exit codes: 0 found, 1 not found, 2 usage or transport error. The
// lookup result is the output; the exit code is for scripts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/assistec/fichas/cmd/fichas/cli"
	"github.com/assistec/fichas/lib/api"
	"github.com/assistec/fichas/lib/config"
	"github.com/assistec/fichas/lib/validate"
	"github.com/assistec/fichas/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	var configPath string
	var serverURL string
	var jsonOutput bool

	flagSet := pflag.NewFlagSet("fichas-rastreio", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to fichas.yaml (default: $FICHAS_CONFIG)")
	flagSet.StringVar(&serverURL, "server", "", "service URL (overrides the config file)")
	flagSet.BoolVar(&jsonOutput, "json", false, "print the raw tracking record as JSON")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("fichas-rastreio")
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

	args := flagSet.Args()
	if len(args) != 1 {
		printHelp(flagSet)
		return &cli.ExitError{Code: 2}
	}
	codigo := strings.ToUpper(strings.TrimSpace(args[0]))
	if codigo == "" {
		return cli.Validation(errors.New("empty tracking code"))
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

	client, err := api.New(api.Config{
		BaseURL: cfg.Server.URL,
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	info, err := client.Track(ctx, codigo)
	if api.ErrStatus(err, http.StatusNotFound) {
		fmt.Printf("Nenhuma ficha encontrada para o código %s.\n", codigo)
		return &cli.ExitError{Code: 1}
	}
	if err != nil {
		return cli.Categorize(err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Printf("Ficha %s\n", info.Codigo)
	fmt.Printf("  Equipamento: %s\n", info.Equipamento)
	fmt.Printf("  Situação:    %s\n", info.Status.Label())
	if info.PrevisaoEntrega != "" {
		fmt.Printf("  Previsão:    %s\n", validate.FormatData(info.PrevisaoEntrega))
	}
	if info.AtualizadoEm != "" {
		fmt.Printf("  Atualizada:  %s\n", validate.FormatDataHora(info.AtualizadoEm))
	}
	if info.ObservacaoPublica != "" {
		fmt.Printf("  Observação:  %s\n", info.ObservacaoPublica)
	}
	return nil
}

// loadConfig resolves the configuration the same way the operator
// terminal does, so one fichas.yaml serves both binaries.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("FICHAS_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Consulta pública de andamento de conserto.

Informe o código impresso no comprovante da ficha (por exemplo
AB12CD34) e veja a situação atual, a previsão de entrega e as
observações da oficina. Não é preciso login.

Usage:
  fichas-rastreio [flags] CÓDIGO

Flags:
%s`, flagSet.FlagUsages())
}
