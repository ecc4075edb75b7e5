package config

import (
	"flag"
	"os"
	"time"

	"github.com/filmstack/idm/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   path to the PEM-encoded signing key
//	-t int      access token expire, minutes
//	-r int      refresh token expire (sliding window), minutes
//	-m int      max refresh token life time (absolute cap), minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration flags
// are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-t", "-r", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SigningKeyFile, "k", config.SigningKeyFile, "signing key PEM file")

	accessTokenExpire := fs.Int("t", int(config.AccessTokenExpire.Minutes()), "access_token_expire (in minutes)")
	refreshTokenExpire := fs.Int("r", int(config.RefreshTokenExpire.Minutes()), "refresh_token_expire (in minutes)")
	maxRefreshTokenLifeTime := fs.Int("m", int(config.MaxRefreshTokenLifeTime.Minutes()), "max_refresh_token_life_time (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenExpire = time.Duration(*accessTokenExpire) * time.Minute
	config.RefreshTokenExpire = time.Duration(*refreshTokenExpire) * time.Minute
	config.MaxRefreshTokenLifeTime = time.Duration(*maxRefreshTokenLifeTime) * time.Minute
}
