package store

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dkolesn/swapmart/internal/api"
	"github.com/dkolesn/swapmart/internal/tokenstore"
)

// Options configures a Store. BaseURL is required; everything else has a
// sensible default.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     tokenstore.Store
	Logger     *zap.Logger
}

// Store is the constructed state context handed to the view layer: one slice
// per domain plus the shared transport. It is built once at process start and
// needs no teardown beyond process exit.
type Store struct {
	Auth       *Auth
	Items      *Items
	Categories *Categories

	client *api.Client
}

// New wires token storage, the http client, and the slices together. The 401
// hook is the single cross-slice coupling point: any slice's request coming
// back unauthorized forces the credential store's logout transition.
func New(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = tokenstore.NewFileStore("")
	}

	client := api.New(opts.BaseURL, opts.HTTPClient, tokens, log)
	auth := NewAuth(client, tokens, log)
	client.SetUnauthorizedHook(auth.ForceLogout)

	return &Store{
		Auth:       auth,
		Items:      NewItems(client, auth.CurrentUserID, log),
		Categories: NewCategories(client, log),
		client:     client,
	}
}
