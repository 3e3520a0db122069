// Package main is a command line client for the device flow gateway
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wrale/oauth2-device-grpc/internal/oauth"
	"github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb"
)

var version = "dev"

type options struct {
	addr    string
	timeout time.Duration
	reveal  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "oauth2-device-client",
		Short: "Drive the OAuth 2.0 device flow through the gRPC gateway",
		Long: `Runs a complete device flow session against the gateway: authenticate,
then introspect, fetch user info, revoke and introspect again.

Examples:
  oauth2-device-client --addr localhost:50051
  oauth2-device-client introspect <token>`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c oauthpb.OAuthServiceClient) error {
				return runSession(ctx, c, cmd.OutOrStdout(), opts.reveal)
			})
		},
	}

	root.PersistentFlags().StringVarP(&opts.addr, "addr", "a", "localhost:50051", "Gateway gRPC address")
	root.PersistentFlags().DurationVarP(&opts.timeout, "timeout", "t", 0, "Overall deadline (0 waits until the flow ends)")
	root.PersistentFlags().BoolVar(&opts.reveal, "reveal", false, "Print issued tokens unmasked")

	root.AddCommand(
		&cobra.Command{
			Use:   "login",
			Short: "Run the device flow and print the issued tokens",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withClient(cmd, opts, func(ctx context.Context, c oauthpb.OAuthServiceClient) error {
					pair, err := authenticate(ctx, c, cmd.OutOrStdout())
					if err != nil {
						return err
					}
					printTokens(cmd.OutOrStdout(), pair, opts.reveal)
					return nil
				})
			},
		},
		tokenCmd("introspect", "Report whether a token is active", func(ctx context.Context, c oauthpb.OAuthServiceClient, w io.Writer, token string) error {
			resp, err := c.Introspect(ctx, &oauthpb.IntrospectRequest{Token: token})
			if err != nil {
				return fmt.Errorf("introspect: %w", err)
			}
			fmt.Fprintf(w, "active: %t\n", resp.Active)
			return nil
		}, opts),
		tokenCmd("userinfo", "Print the user info document for a token", func(ctx context.Context, c oauthpb.OAuthServiceClient, w io.Writer, token string) error {
			resp, err := c.UserInfo(ctx, &oauthpb.UserInfoRequest{Token: token})
			if err != nil {
				return fmt.Errorf("userinfo: %w", err)
			}
			fmt.Fprintln(w, resp.Info)
			return nil
		}, opts),
		tokenCmd("revoke", "Revoke a token", func(ctx context.Context, c oauthpb.OAuthServiceClient, w io.Writer, token string) error {
			if _, err := c.Revoke(ctx, &oauthpb.RevokeRequest{Token: token}); err != nil {
				return fmt.Errorf("revoke: %w", err)
			}
			fmt.Fprintln(w, "revoked")
			return nil
		}, opts),
	)
	return root
}

type tokenFunc func(ctx context.Context, c oauthpb.OAuthServiceClient, w io.Writer, token string) error

func tokenCmd(use, short string, fn tokenFunc, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <token>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c oauthpb.OAuthServiceClient) error {
				return fn(ctx, c, cmd.OutOrStdout(), args[0])
			})
		},
	}
}

func withClient(cmd *cobra.Command, opts *options, fn func(context.Context, oauthpb.OAuthServiceClient) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", opts.addr, err)
	}
	defer conn.Close()

	return fn(ctx, oauthpb.NewOAuthServiceClient(conn))
}

type tokenPair struct {
	AccessToken  string
	RefreshToken string
}

// authenticate prints every progress message and returns the tokens carried
// by the final one
func authenticate(ctx context.Context, c oauthpb.OAuthServiceClient, w io.Writer) (tokenPair, error) {
	stream, err := c.Authenticate(ctx, &oauthpb.Empty{})
	if err != nil {
		return tokenPair{}, fmt.Errorf("authenticate: %w", err)
	}

	var pair tokenPair
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return tokenPair{}, fmt.Errorf("authenticate: %w", err)
		}
		fmt.Fprintln(w, msg.Message)
		if msg.AccessToken != "" {
			pair = tokenPair{AccessToken: msg.AccessToken, RefreshToken: msg.RefreshToken}
		}
	}
	if pair.AccessToken == "" {
		return tokenPair{}, errors.New("authenticate: stream ended without tokens")
	}
	return pair, nil
}

// printTokens writes the pair masked unless reveal is set
func printTokens(w io.Writer, pair tokenPair, reveal bool) {
	show := oauth.MaskToken
	if reveal {
		show = func(s string) string { return s }
	}
	fmt.Fprintf(w, "access_token: %s\n", show(pair.AccessToken))
	if pair.RefreshToken != "" {
		fmt.Fprintf(w, "refresh_token: %s\n", show(pair.RefreshToken))
	}
}

func runSession(ctx context.Context, c oauthpb.OAuthServiceClient, w io.Writer, reveal bool) error {
	pair, err := authenticate(ctx, c, w)
	if err != nil {
		return err
	}
	printTokens(w, pair, reveal)

	active, err := c.Introspect(ctx, &oauthpb.IntrospectRequest{Token: pair.AccessToken})
	if err != nil {
		return fmt.Errorf("introspect: %w", err)
	}
	fmt.Fprintf(w, "active: %t\n", active.Active)

	info, err := c.UserInfo(ctx, &oauthpb.UserInfoRequest{Token: pair.AccessToken})
	if err != nil {
		return fmt.Errorf("userinfo: %w", err)
	}
	fmt.Fprintf(w, "userinfo: %s\n", info.Info)

	if _, err := c.Revoke(ctx, &oauthpb.RevokeRequest{Token: pair.AccessToken}); err != nil {
		return fmt.Errorf("revoke: %w", err)
	}
	fmt.Fprintln(w, "revoked")

	active, err = c.Introspect(ctx, &oauthpb.IntrospectRequest{Token: pair.AccessToken})
	if err != nil {
		return fmt.Errorf("introspect after revoke: %w", err)
	}
	fmt.Fprintf(w, "active after revoke: %t\n", active.Active)
	return nil
}
