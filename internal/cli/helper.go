package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/notifications"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/workflow"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func effectiveLogLevel() string {
	if debug || verbose {
		return "debug"
	}
	return viper.GetString("log-level")
}

func timeoutConfig() cluster.TimeoutConfig {
	t := cluster.DefaultTimeoutConfig()
	if sec := viper.GetInt("timeout"); sec > 0 {
		t.OperationTimeout = time.Duration(sec) * time.Second
	}
	return t
}

func webhookProvider() notifications.Webhook {
	return notifications.Webhook{
		URL:      viper.GetString("webhook-url"),
		Username: viper.GetString("webhook-username"),
		Password: viper.GetString("webhook-password"),
	}
}

const defaultUsername = "admin"

// credentials holds the explicit (flag or env) login for one cluster.
type credentials struct {
	Username string
	Password string
}

// resolveProfile builds the connection profile for name. Explicit credentials
// win over the config profile, the fallback fills whatever is still empty and
// the password is prompted for as a last resort.
func resolveProfile(name string, explicit, fallback credentials) (cluster.Profile, error) {
	profiles, err := cluster.DecodeProfiles(viper.Get("clusters"))
	if err != nil {
		return cluster.Profile{}, err
	}

	p := cluster.ResolveProfile(profiles, name)
	if explicit.Username != "" {
		p.Username = explicit.Username
	}
	if explicit.Password != "" {
		p.Password = explicit.Password
	}
	if p.Username == "" {
		p.Username = fallback.Username
	}
	if p.Password == "" {
		p.Password = fallback.Password
	}
	if p.Username == "" {
		p.Username = defaultUsername
	}
	if viper.GetBool("insecure") {
		p.Insecure = true
	}

	if p.Password == "" {
		p.Password, err = promptPassword(fmt.Sprintf("%s@%s", p.Username, p.Address))
		if err != nil {
			return cluster.Profile{}, err
		}
	}
	return p, nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return "", fmt.Errorf("no password given for %s and stdin is not a terminal (use --password or SNAPOPTIMIZE_PASSWORD)", label)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", label)
	raw, err := term.ReadPassword(int(fd))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(string(raw), "\r\n"), nil
}

// targetFromFlags resolves the --cluster/--vserver/--volume triple.
func targetFromFlags() (workflow.ClusterTarget, error) {
	creds := credentials{Username: viper.GetString("username"), Password: viper.GetString("password")}
	profile, err := resolveProfile(viper.GetString("cluster"), creds, credentials{})
	if err != nil {
		return workflow.ClusterTarget{}, err
	}
	return workflow.ClusterTarget{
		Profile: profile,
		SVM:     viper.GetString("vserver"),
		Volume:  viper.GetString("volume"),
	}, nil
}
