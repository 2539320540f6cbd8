package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/jonboulle/clockwork"

	"github.com/orangesnowtech/dxi-reactions/internal/client"
	"github.com/orangesnowtech/dxi-reactions/internal/domain"
	"github.com/orangesnowtech/dxi-reactions/internal/notify"
	"github.com/orangesnowtech/dxi-reactions/internal/version"
)

const usage = `Reaction service control.

Drives the same controller the embedded widgets use: markers persist between
invocations, so reacting twice with the same kind removes the reaction again.

Usage:
    reactctl counts <item_id> [--server=<url>]
    reactctl react <item_id> <kind> [--server=<url>] [--variant=<variant>] [--markers=<path>]
    reactctl sync <item_id> [--server=<url>] [--variant=<variant>] [--markers=<path>]
    reactctl reset-all [--server=<url>]

Options:
    -h --help            Show this screen.
    --version            Show version.
    --server=<url>       Service base URL [default: http://localhost:8080].
    --variant=<variant>  Reaction variant, classic or share [default: classic].
    --markers=<path>     Marker file path (defaults to ~/.reactctl/markers.json).`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version.Get().Version)
	if err != nil {
		fail(err)
	}

	serverURL, _ := opts.String("--server")
	transport := client.NewHTTPTransport(serverURL)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch {
	case boolOpt(opts, "counts"):
		itemID, _ := opts.String("<item_id>")
		counts, err := transport.GetCounts(ctx, itemID)
		if err != nil {
			fail(err)
		}
		printCounts(counts)

	case boolOpt(opts, "react"):
		itemID, _ := opts.String("<item_id>")
		kind, _ := opts.String("<kind>")
		state, err := newController(opts, transport).React(ctx, itemID, domain.Kind(kind))
		if err != nil {
			fail(err)
		}
		if !state.Applied {
			fmt.Println("already shared, nothing sent")
			return
		}
		fmt.Printf("chosen: %s\n", orNone(state.Chosen))
		printCounts(state.Counts)

	case boolOpt(opts, "sync"):
		itemID, _ := opts.String("<item_id>")
		state, err := newController(opts, transport).Sync(ctx, itemID, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: fetch failed (%v), showing fallback counts\n", err)
		}
		fmt.Printf("chosen: %s\n", orNone(state.Chosen))
		fmt.Printf("shared: %t\n", state.Shared)
		printCounts(state.Counts)

	case boolOpt(opts, "reset-all"):
		items, err := transport.ResetAll(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("reset reactions for %d items\n", items)
	}
}

func newController(opts docopt.Opts, transport *client.HTTPTransport) *client.Controller {
	variantStr, _ := opts.String("--variant")
	variant := domain.Variant(variantStr)
	if !variant.Valid() {
		fail(fmt.Errorf("unknown variant %q", variantStr))
	}

	markers, err := client.NewMarkerStore(markerPath(opts))
	if err != nil {
		fail(err)
	}

	return client.NewController(transport, markers, notify.NewBus(), variant, clockwork.NewRealClock())
}

func markerPath(opts docopt.Opts) string {
	if path, err := opts.String("--markers"); err == nil && path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".reactctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return ""
	}
	return filepath.Join(dir, "markers.json")
}

func printCounts(counts domain.Counts) {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("%-8s %d\n", kind, counts[domain.Kind(kind)])
	}
}

func orNone(k domain.Kind) string {
	if k == domain.KindNone {
		return "(none)"
	}
	return string(k)
}

func boolOpt(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
