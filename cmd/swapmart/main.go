// Command swapmart is a terminal client for the SwapMart bartering marketplace.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkolesn/swapmart/internal/config"
	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
	"github.com/dkolesn/swapmart/internal/query"
	"github.com/dkolesn/swapmart/internal/store"
	"github.com/dkolesn/swapmart/internal/tokenstore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `swapmart CLI
Usage:
  swapmart [-api URL] [-v] [-json] <cmd> [args]

Commands:
  version
  register    -u <username> -e <email> [-p <password>] [-first NAME] [-last NAME] [-picture FILE]
  login       -u <login> [-p <password>]
  logout
  whoami
  items       [-search TEXT] [-category ID] [-sort latest|oldest|price_high|price_low]
  mine
  item        -id <id>
  categories
  category    -id <id>

Session-required commands fail with a login hint when no session is active.
`)
	os.Exit(2)
}

// main parses configuration, builds the store, and dispatches subcommands.
func main() {
	cfg := config.Load()

	apiURL := flag.String("api", cfg.BaseURL, "API base URL")
	tokenFile := flag.String("token-file", cfg.TokenFile, "token file path")
	timeout := flag.Duration("timeout", cfg.Timeout, "request timeout")
	verbose := flag.Bool("v", false, "verbose logging")
	asJSON := flag.Bool("json", false, "JSON output")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	st := store.New(store.Options{
		BaseURL:    *apiURL,
		HTTPClient: &http.Client{Timeout: *timeout},
		Tokens:     tokenstore.NewFileStore(*tokenFile),
		Logger:     logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	r := renderer{json: *asJSON}

	switch cmd {

	case "version":
		fmt.Printf("swapmart %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		username := fs.String("u", "", "username")
		email := fs.String("e", "", "email")
		password := fs.String("p", "", "password (prompted when omitted)")
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		picture := fs.String("picture", "", "profile picture file")
		_ = fs.Parse(args)
		if *username == "" || *email == "" {
			fmt.Fprintln(os.Stderr, "need -u and -e")
			os.Exit(1)
		}
		guard(st.Auth.RequireAnonymous())

		reg := model.Registration{
			Username:  *username,
			Email:     *email,
			Password:  passwordOr(*password),
			FirstName: *first,
			LastName:  *last,
		}
		if *picture != "" {
			data, err := os.ReadFile(*picture)
			if err != nil {
				fail(err)
			}
			reg.ProfilePicture = &model.FileAttachment{Name: baseName(*picture), Data: data}
		}
		if err := st.Auth.Register(ctx, reg); err != nil {
			fail(err)
		}
		r.session(st.Auth.Session().Data)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		login := fs.String("u", "", "login")
		password := fs.String("p", "", "password (prompted when omitted)")
		_ = fs.Parse(args)
		if *login == "" {
			fmt.Fprintln(os.Stderr, "need -u")
			os.Exit(1)
		}
		guard(st.Auth.RequireAnonymous())

		if err := st.Auth.Login(ctx, *login, passwordOr(*password)); err != nil {
			fail(err)
		}
		r.session(st.Auth.Session().Data)

	case "logout":
		guard(st.Auth.RequireSession())
		st.Auth.Logout(ctx)
		fmt.Println("logged out")

	case "whoami":
		guard(st.Auth.RequireSession())
		r.session(st.Auth.Session().Data)

	case "items":
		fs := flag.NewFlagSet("items", flag.ExitOnError)
		search := fs.String("search", "", "text filter over title+description")
		category := fs.Int64("category", 0, "category id filter")
		sortBy := fs.String("sort", string(query.OrderNewest), "sort order")
		_ = fs.Parse(args)
		guard(st.Auth.RequireSession())

		if err := st.Items.FetchAll(ctx); err != nil {
			fail(err)
		}
		items := query.Sort(
			query.Filter(st.Items.Others(), query.Params{Search: *search, CategoryID: *category}),
			query.ParseOrder(*sortBy),
		)
		r.items(items)

	case "mine":
		guard(st.Auth.RequireSession())
		if err := st.Items.FetchMine(ctx); err != nil {
			fail(err)
		}
		r.items(st.Items.Mine().Data)

	case "item":
		fs := flag.NewFlagSet("item", flag.ExitOnError)
		id := fs.Int64("id", 0, "item id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		guard(st.Auth.RequireSession())
		if err := st.Items.FetchByID(ctx, *id); err != nil {
			fail(err)
		}
		r.item(st.Items.Current().Data)

	case "categories":
		guard(st.Auth.RequireSession())
		if err := st.Categories.FetchAll(ctx); err != nil {
			fail(err)
		}
		r.categories(st.Categories.All().Data)

	case "category":
		fs := flag.NewFlagSet("category", flag.ExitOnError)
		id := fs.Int64("id", 0, "category id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		guard(st.Auth.RequireSession())
		if err := st.Categories.FetchByID(ctx, *id); err != nil {
			fail(err)
		}
		r.category(st.Categories.Current().Data)

	default:
		usage()
	}
}

// passwordOr returns the flag value or prompts for it without echo.
func passwordOr(p string) string {
	if p != "" {
		return p
	}
	fmt.Fprint(os.Stderr, "password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fail(err)
	}
	return string(b)
}

func baseName(p string) string {
	if i := strings.LastIndexByte(p, os.PathSeparator); i >= 0 {
		return p[i+1:]
	}
	return p
}

// guard enforces the routing surface: session-required commands stop with a
// login hint, anonymous-only commands stop when already logged in.
func guard(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, errs.ErrNoSession):
		fmt.Fprintln(os.Stderr, "not logged in (run: swapmart login -u <login>)")
	case errors.Is(err, errs.ErrSessionExists):
		fmt.Fprintln(os.Stderr, "already logged in (run: swapmart logout first)")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

// fail prints a normalized remote failure and exits. Field-level validation
// details are listed under the banner message.
func fail(err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, "error:", apiErr.Message)
		for field, msgs := range apiErr.Details {
			for _, m := range msgs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, m)
			}
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
