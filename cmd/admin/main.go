package main

import (
	"bufio"
	"context"
	"giftlist/config"
	"giftlist/di"
	"giftlist/shared/logger"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	commandSetPassword = "set-password"
	commandTimeout     = 30 * time.Second
)

// admin set-password [password]
//
// Without the password argument the password is read from the first line of stdin, which keeps
// it out of the shell history.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if len(os.Args) < 2 || os.Args[1] != commandSetPassword { //nolint:mnd
		log.Fatal().Msg("Usage: admin set-password [password]")
	}

	password, err := readPassword(os.Args[2:])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}

	if err := setPassword(password); err != nil {
		log.Fatal().Err(err).Msg("Failed to set admin password")
	}

	log.Info().Msg("Admin password updated")
}

func setPassword(password string) error {
	tool := di.InitializeAdminTool()
	defer tool.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	return tool.Auth.SetPassword(ctx, password) //nolint:wrapcheck
}

func readPassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err //nolint:wrapcheck
	}

	return strings.TrimRight(line, "\r\n"), nil
}
