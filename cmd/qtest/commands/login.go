package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtestclient"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to qTest Manager",
		Long:  "Authenticate with username and password and store the resulting session",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			clientConfig, err := baseClientConfig(config)
			if err != nil {
				return err
			}

			if username == "" {
				username = config.Username
			}

			if username == "" {
				username, err = promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Username: ")
				if err != nil {
					return err
				}
			}

			if username == "" {
				return constants.ErrUsernameRequired
			}

			if password == "" {
				password, err = promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			if password == "" {
				return constants.ErrPasswordRequired
			}

			clientConfig.Username = username
			clientConfig.Password = password

			client, err := qtestclient.New(context.Background(), clientConfig)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			stored, err := loadStoredConfig()
			if err != nil {
				return err
			}

			// The session belongs to the host it was issued by.
			stored.Subdomain = config.Subdomain
			stored.BaseURL = config.BaseURL
			stored.Username = username
			applySession(stored, client.Session())

			err = saveConfigStruct(stored)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out from qTest Manager",
		Long:  "Remove the stored session from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadStoredConfig()
			if err != nil {
				return err
			}

			clearSession(config)

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func promptLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func promptPassword(out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "Password: ")

	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprintln(out)

	return string(bytePassword), nil
}
