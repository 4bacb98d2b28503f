package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nupi-ai/openvpn-authc/internal/authc"
	"github.com/nupi-ai/openvpn-authc/internal/config"
	"github.com/nupi-ai/openvpn-authc/internal/constants"
	"github.com/nupi-ai/openvpn-authc/internal/credentials"
	"github.com/nupi-ai/openvpn-authc/internal/logging"
	"github.com/nupi-ai/openvpn-authc/internal/version"
	"github.com/spf13/cobra"
)

const programName = "openvpn-authc"

// errAuthFailed ends a run that already reported its outcome through the log.
var errAuthFailed = errors.New("authentication failed")

// runtimeEnv carries the process surroundings so tests can substitute them.
type runtimeEnv struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	lookup      credentials.LookupFunc
	searchPaths []string
	openLogger  func(verbose bool) (*logging.Logger, error)
}

func processEnv() runtimeEnv {
	return runtimeEnv{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		lookup:      os.LookupEnv,
		searchPaths: config.SearchPaths,
		openLogger: func(verbose bool) (*logging.Logger, error) {
			return logging.New(programName, verbose, os.Stderr)
		},
	}
}

type flags struct {
	configFile    string
	defaultConfig bool
	hostname      string
	port          int
	timeout       int
	user          string
	pass          string
	commonName    string
	clientIP      string
	clientPort    int
	verbose       bool
	version       bool
}

// credentialFlags switch the helper into test mode when any of them is given.
var credentialFlags = []string{"user", "pass", "cn", "client-ip", "client-port"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, processEnv(), os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the command line and maps the outcome to an exit status.
func execute(ctx context.Context, env runtimeEnv, args []string) int {
	cmd := newRootCommand(env)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errAuthFailed) {
			fmt.Fprintf(env.stderr, "Error: %v\n", err)
		}
		return constants.ExitCodeAuthFailed
	}
	return constants.ExitCodeAuthSuccess
}

func newRootCommand(env runtimeEnv) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   programName + " [flags] [credentials-file]",
		Short: "OpenVPN --auth-user-pass-verify helper for a custom authentication server",
		Long: `This is an OpenVPN --auth-user-pass-verify helper program, which contacts an
OpenVPN custom authentication server. All messages are logged into syslog.

Configuration files are tried in the following order; the first existing
file ends the search:

  ` + strings.Join(config.SearchPaths, "\n  ") + `

Test mode: when the program is not started by OpenVPN, or any of the
--user/--pass/--cn/--client-ip/--client-port flags is given, credentials are
taken from the command line (the password is prompted for if missing) and
verbose output is enabled.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, env, f, args)
		},
	}
	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("invalid command line options: %w. Run %s --help for instructions", err, programName)
	})

	fl := cmd.Flags()
	fl.SortFlags = false
	fl.StringVarP(&f.configFile, "config", "c", "", "Load this configuration file after the search path")
	fl.BoolVarP(&f.defaultConfig, "default-config", "d", false, "Print the default configuration file and exit")
	fl.StringVarP(&f.hostname, "hostname", "H", constants.DefaultHostname, "Authentication server hostname or UNIX domain socket")
	fl.IntVarP(&f.port, "port", "p", constants.DefaultPort, "Authentication server port, ignored for UNIX domain sockets")
	fl.IntVarP(&f.timeout, "timeout", "t", int(constants.DefaultAuthTimeout/time.Second), "Authentication timeout in seconds")
	fl.StringVarP(&f.user, "user", "U", "", "Username (test mode)")
	fl.StringVarP(&f.pass, "pass", "P", "", "User's password (test mode)")
	fl.StringVarP(&f.commonName, "cn", "C", "", "Certificate common name (test mode)")
	fl.StringVarP(&f.clientIP, "client-ip", "X", "", "VPN client's IP address (test mode)")
	fl.IntVarP(&f.clientPort, "client-port", "Y", 0, "VPN client's connection source port (test mode)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Copy log messages to stderr")
	fl.BoolVarP(&f.version, "version", "V", false, "Print program version and exit")
	return cmd
}

func run(cmd *cobra.Command, env runtimeEnv, f flags, args []string) error {
	if f.version {
		fmt.Fprintln(env.stdout, version.Banner(programName))
		return nil
	}
	if f.defaultConfig {
		return config.WriteSample(env.stdout)
	}

	verifyHook := credentials.IsVerifyHook(env.lookup)
	testMode := !verifyHook
	for _, name := range credentialFlags {
		if cmd.Flags().Changed(name) {
			testMode = true
		}
	}

	logger, err := env.openLogger(f.verbose || testMode)
	if err != nil && (f.verbose || testMode) {
		fmt.Fprintf(env.stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	cfg, err := loadConfig(cmd, env, f, logger)
	if err != nil {
		return err
	}
	if !verifyHook {
		scriptType, _ := env.lookup(constants.EnvVarScriptType)
		logger.Printf("Program is not executed as --auth-user-pass-verify openvpn server argument. Environment variable \"%s\" != \"(auth-)?user-pass-verify\" (%s)",
			constants.EnvVarScriptType, scriptType)
	}

	var source credentials.Source
	switch {
	case testMode:
		logger.Printf("Program invoked in TEST mode.")
		cred := authc.Credential{
			Username:   f.user,
			Password:   f.pass,
			CommonName: f.commonName,
			ClientIP:   f.clientIP,
			ClientPort: f.clientPort,
		}
		if cred.Password == "" {
			cred.Password, err = readPassword(env.stdin, env.stdout)
			if err != nil {
				return err
			}
		}
		source = credentials.Static(cred)
	case len(args) == 1:
		source = credentials.File{Path: args[0], Lookup: env.lookup, Logger: logger.Logger}
	default:
		source = credentials.Env{Lookup: env.lookup, Logger: logger.Logger}
	}

	cred, err := source.Load()
	if err != nil {
		logger.Printf("Unable to retrieve credentials: %v", err)
		return errAuthFailed
	}

	if testMode {
		fmt.Fprint(env.stderr, "\n--- VERBOSE OUTPUT ---\n")
	}

	client := authc.New(authc.Options{
		Hostname: cfg.Hostname,
		Port:     cfg.Port,
		Timeout:  cfg.Timeout,
		Logger:   logger.Logger,
	})
	_, authErr := client.Authenticate(cmd.Context(), cred)

	if testMode {
		outcome := "SUCCEEDED"
		if authErr != nil {
			outcome = "FAILED"
		}
		fmt.Fprint(env.stderr, "--- VERBOSE OUTPUT ---\n\n")
		fmt.Fprintf(env.stdout, "Authentication %s.\n", outcome)
	}
	if authErr != nil {
		return errAuthFailed
	}
	return nil
}

// loadConfig layers defaults, the first file on the search path, an explicit
// --config file and explicit endpoint flags, in that order.
func loadConfig(cmd *cobra.Command, env runtimeEnv, f flags, logger *logging.Logger) (config.Config, error) {
	cfg, _ := config.LoadFirst(env.searchPaths, config.Default(), logger.Logger)

	if f.configFile != "" {
		var err error
		cfg, err = config.LoadFile(config.ExpandPath(f.configFile), cfg, logger.Logger)
		if err != nil {
			return cfg, fmt.Errorf("unable to parse config file '%s': %w", f.configFile, err)
		}
	}

	fl := cmd.Flags()
	if fl.Changed("hostname") {
		cfg.Hostname = f.hostname
	}
	if fl.Changed("port") {
		cfg.Port = f.port
	}
	if fl.Changed("timeout") {
		cfg.Timeout = time.Duration(f.timeout) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
