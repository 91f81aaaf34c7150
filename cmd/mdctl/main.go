// mdctl is a command line client for the media discovery API. The access
// token from signup or signin is kept in a slot file and sent on later
// commands until signout or until the server rejects it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/spec-kit/media-discovery/pkg/client"
)

const defaultBaseURL = "http://localhost:5000/api/v1"

type options struct {
	baseURL     string
	tokenFile   string
	username    string
	password    string
	newPassword string
	displayName string
	mediaType   string
	mediaID     string
	title       string
	poster      string
	content     string
	rate        float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var apiErr *client.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("mdctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.baseURL, "base-url", envOr("MDCTL_BASE_URL", defaultBaseURL), "API base URL including the prefix")
	flagSet.StringVar(&opts.tokenFile, "token-file", "", "token slot file (default: <config dir>/mdctl/"+client.DefaultSlot+")")
	flagSet.StringVarP(&opts.username, "username", "u", "", "account username")
	flagSet.StringVarP(&opts.password, "password", "p", "", "account password")
	flagSet.StringVar(&opts.newPassword, "new-password", "", "replacement password")
	flagSet.StringVar(&opts.displayName, "display-name", "", "public display name")
	flagSet.StringVar(&opts.mediaType, "media-type", "movie", "movie or tv")
	flagSet.StringVar(&opts.mediaID, "media-id", "", "catalog id of the title")
	flagSet.StringVar(&opts.title, "title", "", "title of the media")
	flagSet.StringVar(&opts.poster, "poster", "", "poster path of the media")
	flagSet.StringVar(&opts.content, "content", "", "review text")
	flagSet.Float64Var(&opts.rate, "rate", 0, "rating stored with a favorite")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return nil
	}

	tokenFile := opts.tokenFile
	if tokenFile == "" {
		path, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		tokenFile = path
	}
	api, err := client.New(opts.baseURL, client.Options{Store: client.NewFileStore(tokenFile)})
	if err != nil {
		return err
	}

	args := flagSet.Args()
	result, err := dispatch(ctx, api, opts, args)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func dispatch(ctx context.Context, api *client.Client, opts options, args []string) (any, error) {
	switch args[0] {
	case "signup":
		if err := requireFlags(map[string]string{"username": opts.username, "password": opts.password, "display-name": opts.displayName}); err != nil {
			return nil, err
		}
		session, err := api.Signup(ctx, client.SignupRequest{
			Username:        opts.username,
			Password:        opts.password,
			ConfirmPassword: opts.password,
			DisplayName:     opts.displayName,
		})
		if err != nil {
			return nil, err
		}
		return session.Account, nil
	case "signin":
		if err := requireFlags(map[string]string{"username": opts.username, "password": opts.password}); err != nil {
			return nil, err
		}
		session, err := api.Signin(ctx, opts.username, opts.password)
		if err != nil {
			return nil, err
		}
		return session.Account, nil
	case "signout":
		return nil, api.Signout()
	case "info":
		return api.Info(ctx)
	case "password":
		if err := requireFlags(map[string]string{"password": opts.password, "new-password": opts.newPassword}); err != nil {
			return nil, err
		}
		return nil, api.UpdatePassword(ctx, client.PasswordChange{
			Password:           opts.password,
			NewPassword:        opts.newPassword,
			ConfirmNewPassword: opts.newPassword,
		})
	case "reviews":
		return reviewsCommand(ctx, api, opts, args[1:])
	case "favorites":
		return favoritesCommand(ctx, api, opts, args[1:])
	case "media":
		if len(args) < 2 || args[1] != "detail" {
			return nil, errors.New("usage: mdctl media detail --media-type movie --media-id <id>")
		}
		if err := requireFlags(map[string]string{"media-id": opts.mediaID}); err != nil {
			return nil, err
		}
		return api.MediaDetail(ctx, opts.mediaType, opts.mediaID)
	case "person":
		if len(args) < 2 {
			return nil, errors.New("usage: mdctl person <id> [medias]")
		}
		if len(args) > 2 && args[2] == "medias" {
			return api.PersonMedias(ctx, args[1])
		}
		return api.Person(ctx, args[1])
	default:
		return nil, fmt.Errorf("unknown command %q", args[0])
	}
}

func reviewsCommand(ctx context.Context, api *client.Client, opts options, args []string) (any, error) {
	action := "list"
	if len(args) > 0 {
		action = args[0]
	}
	switch action {
	case "list":
		return api.Reviews(ctx)
	case "add":
		if err := requireFlags(map[string]string{"media-id": opts.mediaID, "title": opts.title, "poster": opts.poster, "content": opts.content}); err != nil {
			return nil, err
		}
		return api.AddReview(ctx, client.NewReview{
			MediaID:     opts.mediaID,
			MediaType:   opts.mediaType,
			MediaTitle:  opts.title,
			MediaPoster: opts.poster,
			Content:     opts.content,
		})
	case "rm":
		if len(args) < 2 {
			return nil, errors.New("usage: mdctl reviews rm <review-id>")
		}
		return nil, api.RemoveReview(ctx, args[1])
	default:
		return nil, fmt.Errorf("unknown reviews action %q", action)
	}
}

func favoritesCommand(ctx context.Context, api *client.Client, opts options, args []string) (any, error) {
	action := "list"
	if len(args) > 0 {
		action = args[0]
	}
	switch action {
	case "list":
		return api.Favorites(ctx)
	case "add":
		if err := requireFlags(map[string]string{"media-id": opts.mediaID, "title": opts.title, "poster": opts.poster}); err != nil {
			return nil, err
		}
		return api.AddFavorite(ctx, client.NewFavorite{
			MediaID:     opts.mediaID,
			MediaType:   opts.mediaType,
			MediaTitle:  opts.title,
			MediaPoster: opts.poster,
			MediaRate:   opts.rate,
		})
	case "rm":
		if len(args) < 2 {
			return nil, errors.New("usage: mdctl favorites rm <favorite-id>")
		}
		return nil, api.RemoveFavorite(ctx, args[1])
	default:
		return nil, fmt.Errorf("unknown favorites action %q", action)
	}
}

func requireFlags(values map[string]string) error {
	var missing []string
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `mdctl talks to the media discovery API.

Usage:
  mdctl [flags] <command>

Commands:
  signup            create an account (--username --password --display-name)
  signin            sign in and store the token (--username --password)
  signout           forget the stored token
  info              show the signed in account
  password          change password (--password --new-password)
  reviews list|add|rm <id>
  favorites list|add|rm <id>
  media detail      show a title (--media-type --media-id)
  person <id>       show a person; add "medias" for their credits

Flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}
