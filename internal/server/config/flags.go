package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string   HTTP bind address (":8080")
//	-g string   gRPC health bind address (empty disables)
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-p string   password hasher (sha256|bcrypt)
//	-l string   log level
//	-o string   comma separated CORS origins
//
// args is filtered down to these flags first, so -c and anything owned by
// other loaders is ignored.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-p", "-l", "-o"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (minutes)")
	fs.StringVar(&config.PasswordHasher, "p", config.PasswordHasher, "password hasher")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "CORS allowed origins")

	if err := fs.Parse(args); err != nil {
		return err
	}

	setByFlag := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setByFlag[f.Name] = true })

	if setByFlag["t"] {
		config.AccessTokenValidityDuration = time.Duration(*ttl) * time.Minute
	}
	if setByFlag["o"] {
		config.CORSAllowedOrigins = splitList(*origins)
	}
	return nil
}
