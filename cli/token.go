package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/color-game/palettetool/models"
)

func newTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token allowed to store and delete palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := LoadConfig()
			if config.JwtSecret == defaultJwtSecret && !config.DevMode {
				return errors.New("JWT_SECRET must be set outside dev mode")
			}
			if ttl <= 0 {
				ttl = time.Duration(config.JwtTokenDuration) * time.Second
			}

			token, err := models.NewJWTToken(config.JwtSecret, subject, models.ScopeWrite, time.Now(), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "palettetool", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default $JWT_TOKEN_DURATION seconds)")
	return cmd
}
